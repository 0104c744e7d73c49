package config

import (
	stderrors "errors"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/source"
	"github.com/kbukum/fixturekit/validation"
)

// FileName is the config file searched for by Load.
const FileName = "fixtures.yml"

func init() {
	// Registration only fails for an empty tag or nil func.
	_ = validation.RegisterValidation("dataset", func(fl validator.FieldLevel) bool {
		_, err := source.FormatOf(fl.Field().String())
		return err == nil
	})
}

// Config describes a catalog of fixtures backed by dataset files.
//
//	name: app
//	delimiter: "."
//	tables:
//	  users:
//	    source: users.yml
//	    primary_key: id
//	    hidden: [password]
//	    defaults:
//	      password: secret
//	      profile:
//	        active: true
type Config struct {
	Name      string                 `yaml:"name" mapstructure:"name"`
	Delimiter string                 `yaml:"delimiter" mapstructure:"delimiter"`
	Logging   logger.Config          `yaml:"logging" mapstructure:"logging"`
	Tables    map[string]TableConfig `yaml:"tables" mapstructure:"tables" validate:"dive"`

	// BaseDir resolves relative table sources. Load sets it to the
	// directory of the config file.
	BaseDir string `yaml:"-" mapstructure:"-"`
}

// TableConfig configures one fixture.
type TableConfig struct {
	// Source is the dataset file holding the table.
	Source string `yaml:"source" mapstructure:"source" validate:"required,dataset"`
	// Table names the table inside Source. Defaults to the fixture name.
	Table      string         `yaml:"table" mapstructure:"table"`
	PrimaryKey string         `yaml:"primary_key" mapstructure:"primary_key"`
	Hidden     []string       `yaml:"hidden" mapstructure:"hidden"`
	Defaults   map[string]any `yaml:"defaults" mapstructure:"defaults"`
	// Rename moves fields during post-processing, in order.
	Rename []RenameConfig `yaml:"rename" mapstructure:"rename" validate:"dive"`
	// UUID derives a deterministic id field during post-processing.
	UUID *UUIDConfig `yaml:"uuid" mapstructure:"uuid"`

	// ordered holds Defaults as written in a YAML or JSON catalog, with
	// environment overrides applied, before viper lowercased and
	// reordered its keys.
	ordered data.Row
}

// RenameConfig moves one field.
type RenameConfig struct {
	From string `yaml:"from" mapstructure:"from" validate:"required"`
	To   string `yaml:"to" mapstructure:"to" validate:"required"`
}

// UUIDConfig derives a name-based UUID from other fields.
type UUIDConfig struct {
	Field     string   `yaml:"field" mapstructure:"field" validate:"required"`
	Namespace string   `yaml:"namespace" mapstructure:"namespace"`
	From      []string `yaml:"from" mapstructure:"from" validate:"required"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "fixtures"
	}
	if c.Delimiter == "" {
		c.Delimiter = data.DefaultDelimiter
	}
	c.Logging.ApplyDefaults()
	for name, t := range c.Tables {
		if t.Table == "" {
			t.Table = name
		}
		if t.PrimaryKey == "" {
			t.PrimaryKey = fixture.DefaultPrimaryKey
		}
		c.Tables[name] = t
	}
}

// Validate checks struct tags first, then rules that span fields.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation("logging: " + err.Error()).WithCause(err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}

	v := validation.New()
	for _, name := range c.TableNames() {
		t := c.Tables[name]
		prefix := "tables[" + name + "]."
		v.Unique(prefix+"hidden", t.Hidden)
		if t.UUID != nil {
			v.OptionalUUID(prefix+"uuid.namespace", t.UUID.Namespace)
		}
	}
	return v.Err()
}

// TableNames returns the configured fixture names, sorted.
func (c *Config) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SourcePath returns the table's source resolved against BaseDir.
func (c *Config) SourcePath(t TableConfig) string {
	if filepath.IsAbs(t.Source) || c.BaseDir == "" {
		return t.Source
	}
	return filepath.Join(c.BaseDir, t.Source)
}

// DefaultOverride returns the table defaults as an override set with
// dotted keys. Field order and case follow the catalog file when it was
// YAML or JSON.
func (t TableConfig) DefaultOverride(delim string) (data.Row, error) {
	if !t.ordered.IsEmpty() {
		return t.ordered.Flatten(delim), nil
	}
	r, err := data.FromMap(t.Defaults)
	if err != nil {
		return data.Row{}, errors.InvalidInput("defaults", err.Error())
	}
	return r.Flatten(delim), nil
}

// NamespaceOr returns the configured namespace, or fallback when unset.
// Validate rejects namespaces that do not parse.
func (u UUIDConfig) NamespaceOr(fallback uuid.UUID) uuid.UUID {
	id, err := uuid.Parse(u.Namespace)
	if err != nil {
		return fallback
	}
	return id
}

// Load reads a catalog config named appName. It searches the standard
// locations unless WithConfigFile is given, then applies defaults and
// validates the result.
func Load(appName string, opts ...LoaderOption) (*Config, error) {
	defaults := map[string]any{
		"name":             appName,
		"delimiter":        data.DefaultDelimiter,
		"logging.level":    "warn",
		"logging.format":   logger.FormatConsole,
		"logging.output":   "stderr",
		"logging.no_color": false,
	}
	cfg := &Config{}
	file, err := LoadConfig(appName, cfg, append([]LoaderOption{WithDefaults(defaults)}, opts...)...)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "Failed to load configuration.").WithCause(err)
	}
	if file != "" {
		cfg.BaseDir = filepath.Dir(file)
		if err := cfg.restoreTables(file); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// restoreTables re-reads the tables section of a YAML or JSON catalog.
// Viper lowercases every key, so fixture names and default keys get their
// original case and order back from the file. Default values that viper
// holds but the file does not (FIXTURE_* environment overrides) are laid
// over the file values. Other formats keep viper's view.
func (c *Config) restoreTables(file string) error {
	doc, err := readCatalog(file)
	if err != nil {
		return err
	}
	root, _ := doc.AsMap()
	tv, _ := root.Get("tables")
	tables, ok := tv.AsMap()
	if !ok {
		return nil
	}

	restored := make(map[string]TableConfig, len(c.Tables))
	for name, v := range tables.All() {
		key := strings.ToLower(name)
		tc, ok := c.Tables[key]
		if !ok {
			continue
		}
		if containsFold(restored, name) {
			return errors.InvalidInput("tables", "names must differ by more than case").
				WithDetail("table", name)
		}
		if t, ok := v.AsMap(); ok {
			if dv, ok := t.Get("defaults"); ok {
				if d, ok := dv.AsMap(); ok && !d.IsEmpty() {
					tc.ordered = overlayLoaded(d, tc.Defaults)
				}
			}
		}
		restored[name] = tc
		delete(c.Tables, key)
	}
	for key, tc := range c.Tables {
		restored[key] = tc
	}
	c.Tables = restored
	return nil
}

// readCatalog decodes a YAML or JSON catalog keeping key order and case.
// It returns Null for other formats and for an empty file.
func readCatalog(file string) (data.Value, error) {
	format, _ := source.FormatOf(file)
	if format != source.FormatYAML && format != source.FormatJSON {
		return data.Null(), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return data.Value{}, errors.LoadFailed(file, err)
	}
	defer f.Close()

	var doc data.Value
	if format == source.FormatJSON {
		doc, err = data.DecodeJSON(jsontext.NewDecoder(f))
	} else {
		var node yaml.Node
		if err = yaml.NewDecoder(f).Decode(&node); err == nil {
			doc, err = data.FromYAMLNode(&node)
		}
	}
	if stderrors.Is(err, io.EOF) {
		return data.Null(), nil
	}
	if err != nil {
		return data.Value{}, errors.InvalidFormat(file, "a "+string(format)+" fixture catalog").WithCause(err)
	}
	return doc, nil
}

func containsFold(tables map[string]TableConfig, name string) bool {
	for k := range tables {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// overlayLoaded returns file with every value that differs in loaded
// replaced by the loaded one. Keys match regardless of case, and the file's
// spelling wins. Strings from the environment replacing a non-string file
// value are read as YAML scalars, so "false" stays a bool.
func overlayLoaded(file data.Row, loaded map[string]any) data.Row {
	out := file
	for _, k := range slices.Sorted(maps.Keys(loaded)) {
		lv := loaded[k]
		fk, fv, found := getFold(file, k)
		if !found {
			fk = k
		}
		if lm, ok := lv.(map[string]any); ok {
			if fm, ok := fv.AsMap(); found && ok {
				out = out.Set(fk, data.Map(overlayLoaded(fm, lm)))
				continue
			}
		}
		v, err := loadedValue(lv, fv)
		if err != nil || (found && v.Equal(fv)) {
			continue
		}
		out = out.Set(fk, v)
	}
	return out
}

func getFold(r data.Row, key string) (string, data.Value, bool) {
	if v, ok := r.Get(key); ok {
		return key, v, true
	}
	for k, v := range r.All() {
		if strings.EqualFold(k, key) {
			return k, v, true
		}
	}
	return "", data.Value{}, false
}

func loadedValue(v any, like data.Value) (data.Value, error) {
	// JSON catalogs reach viper as float64 even for whole numbers.
	if f, ok := v.(float64); ok {
		if i, isInt := like.AsInt(); isInt && float64(i) == f {
			return like, nil
		}
	}
	s, ok := v.(string)
	if !ok || like.IsNull() {
		return data.Of(v)
	}
	if _, isString := like.AsString(); isString {
		return data.String(s), nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return data.String(s), nil
	}
	parsed, err := data.FromYAMLNode(&node)
	if err != nil {
		return data.String(s), nil
	}
	return parsed, nil
}
