// Package config loads fixture catalog configuration.
//
// It uses Viper to read fixtures.yml (or an explicit file in any format
// Viper supports), loads a .env file through godotenv, and applies
// FIXTURE_-prefixed environment variables to existing keys:
//
//	cfg, err := config.Load("app", config.WithConfigFile("testdata/fixtures.yml"))
//
// FIXTURE_LOGGING_LEVEL=debug sets logging.level and
// FIXTURE_TABLES_USERS_PRIMARY_KEY=uid sets tables.users.primary_key.
// Viper lowercases keys, so table names are lowercase. Table defaults read
// from a YAML file keep their written order and case.
package config
