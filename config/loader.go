package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/fixturekit/logger"
)

// EnvPrefix marks environment variables that override configuration keys.
const EnvPrefix = "FIXTURE_"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for an application.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(appName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(appName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(appName)
	}

	return resolved
}

// findConfigFile searches for fixtures.yml in standard locations.
func (cr *Resolver) findConfigFile(appName string) string {
	searchPaths := []string{
		fmt.Sprintf("./cmd/%s/%s", appName, FileName),
		"./" + FileName,
		"./testdata/" + FileName,
		"./config/" + FileName,
		"../" + FileName,
		"../testdata/" + FileName,
	}

	for _, path := range searchPaths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func (cr *Resolver) findEnvFile(appName string) string {
	envFiles := []string{
		fmt.Sprintf(".env.%s", appName),
		".env",
	}

	for _, envFile := range envFiles {
		for _, basePath := range []string{".", "./testdata", ".."} {
			fullPath := basePath + "/" + envFile
			if cr.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string         // Direct config file path (optional)
	EnvFile    string         // Direct env file path (optional)
	Defaults   map[string]any // Viper defaults keyed by dotted path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults registers default values. A defaulted key can be
// overridden from the environment even when the file does not set it.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) { lc.Defaults = defaults }
}

// LoadConfig loads configuration for an application into cfg.
// It searches for fixtures.yml and .env files in standard locations, applies
// FIXTURE_* environment overrides, and unmarshals the result into cfg.
// It returns the config file actually read, or "" when none was found.
func LoadConfig(appName string, cfg interface{}, opts ...LoaderOption) (string, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(appName, lc)

	return loadFromResolvedFiles(appName, cfg, files, lc)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(appName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) (string, error) {
	v := viper.New()
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	// 1. Load the config file (base configuration)
	read := ""
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
		read = files.ConfigFile
	} else if lc.ConfigFile != "" {
		logger.Warn("config file not found", logger.Fields(logger.FieldPath, lc.ConfigFile))
	}

	// 2. Load .env file so its variables join the environment
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("failed to load .env file", logger.Fields(logger.FieldPath, files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	// 3. Environment overrides for keys the file or defaults define
	autoBindEnvVars(v, os.Environ())

	// 4. Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return "", fmt.Errorf("failed to unmarshal config for %s: %w", appName, err)
	}

	return read, nil
}

// autoBindEnvVars applies FIXTURE_* variables to the keys they name.
// UPPER_CASE_WITH_UNDERSCORES may map to several nested key formats; only
// variants that already exist are set, so a variable never invents a key
// inside a map section such as tables.
func autoBindEnvVars(v *viper.Viper, environ []string) {
	for _, env := range environ {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvPrefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], EnvPrefix)
		value := pair[1]

		for _, variant := range generateEnvKeyVariants(key) {
			if v.IsSet(variant) {
				v.Set(variant, value)
			}
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	LOGGING_LEVEL -> [logging_level, logging.level]
//	TABLES_USERS_PRIMARY_KEY -> [tables_users_primary_key, tables.users.primary.key, tables.users_primary_key, tables.users.primary_key, ...]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: a.b_c_d, a.b.c_d, ...
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	// Underscored head: a_b.c, a_b_c.d, ...
	for i := 2; i < len(parts); i++ {
		head := strings.Join(parts[:i], "_")
		rest := strings.Join(parts[i:], ".")
		variants = append(variants, head+"."+rest)
	}

	// Nested head with underscored tail pairs: a.b.c_d keeps the last two joined.
	if len(parts) >= 3 {
		prefix := strings.Join(parts[:len(parts)-2], ".")
		tail := strings.Join(parts[len(parts)-2:], "_")
		variants = append(variants, prefix+"."+tail)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
