package cli

import (
	"github.com/spf13/cobra"

	"domain-migrator/internal/domain"
	"domain-migrator/internal/migrate"
)

type migrateOptions struct {
	DomainPath string
	OutPath    string
}

func newMigrateCmd(a *app) *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate a domain file or a directory of domain files",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return a.runMigrate(c, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.DomainPath, "domain", "d", domain.DefaultDomainPath, "domain file or directory of domain files")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "",
		"output file or directory (default: domain.yml, or new_domain for a directory, next to the input)")

	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command, opts *migrateOptions) error {
	res, err := migrate.New(a.fs).Run(migrate.Options{
		DomainPath: opts.DomainPath,
		OutPath:    opts.OutPath,
	})
	if err != nil {
		return err
	}

	stderr := newReporter(cmd.ErrOrStderr(), a.settings.NoColor)
	for _, d := range res.Diagnostics.All() {
		stderr.Diagnostic(d)
	}

	newReporter(cmd.OutOrStdout(), a.settings.NoColor).Success(res)

	return nil
}
