package config

import (
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Setting keys. They double as flag names.
const (
	KeyConfig   = "config"
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyNoColor  = "no-color"
)

// EnvPrefix prefixes the environment variables, e.g. DOMAIN_MIGRATE_LOG_LEVEL.
const EnvPrefix = "DOMAIN_MIGRATE"

// DefaultLogLevel only lets warnings and errors through.
const DefaultLogLevel = "<root>=WARNING"

// Settings is the resolved configuration.
type Settings struct {
	// LogLevel is a loggo specification ("<root>=INFO;domainmigrate.migrate=TRACE")
	// or a single level name applied to the root logger.
	LogLevel string
	// LogFile, if set, receives a copy of the log in a rotated file.
	LogFile string
	// NoColor disables styled terminal output.
	NoColor bool
}

// New returns a viper instance with defaults and environment binding.
// Config files are read through fs.
func New(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyNoColor, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file named by the config key, if any, and returns
// the resolved settings.
func Load(v *viper.Viper) (Settings, error) {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)

		err := v.ReadInConfig()
		if err != nil {
			return Settings{}, errors.Annotatef(err, "reading config file %s", file)
		}
	}

	s := Settings{
		LogLevel: strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFile:  v.GetString(KeyLogFile),
		NoColor:  v.GetBool(KeyNoColor),
	}

	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}

	return s, nil
}
