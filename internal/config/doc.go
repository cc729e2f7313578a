// Package config resolves the runtime settings of the migrator.
//
// Settings come from, highest precedence first: command-line flags bound
// to the viper instance, DOMAIN_MIGRATE_* environment variables and an
// optional YAML or TOML config file.
package config
