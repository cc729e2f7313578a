package cli

import (
	"io"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"domain-migrator/internal/config"
	"domain-migrator/internal/logging"
)

var logger = loggo.GetLogger("domainmigrate.cli")

// app is the state shared by the commands of one invocation.
type app struct {
	fs       afero.Fs
	v        *viper.Viper
	settings config.Settings
	logs     io.Closer
}

func newApp(fs afero.Fs) *app {
	return &app{
		fs:       fs,
		v:        config.New(fs),
		settings: config.Settings{LogLevel: config.DefaultLogLevel},
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "domain-migrate",
		Short: "domain-migrate - convert 2.0 domain files to the 3.0 format",
		Long: `domain-migrate moves slot mappings from forms onto the slots of a
2.0 domain, makes implicit entity filling explicit and writes the result in
the 3.0 format. The original files are backed up next to the input.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyConfig, "", "config file (YAML or TOML)")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "log level, or a loggo specification such as '<root>=INFO'")
	flags.String(config.KeyLogFile, "", "also write the log to this file")
	flags.Bool(config.KeyNoColor, false, "disable colored output")

	for _, key := range []string{config.KeyConfig, config.KeyLogLevel, config.KeyLogFile, config.KeyNoColor} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(newMigrateCmd(a), newVersionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(a.v)
	if err != nil {
		return errors.Trace(err)
	}

	a.settings = settings

	a.logs, err = logging.Configure(settings, cmd.ErrOrStderr())
	if err != nil {
		return errors.Trace(err)
	}

	logger.Debugf("settings: %+v", settings)

	return nil
}

func (a *app) close() {
	if a.logs == nil {
		return
	}

	err := a.logs.Close()
	if err != nil {
		logger.Warningf("closing log file: %v", err)
	}
}
