package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"domain-migrator/internal/domain"
)

// Version is the build version, set with -ldflags "-X".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and the domain format produced",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "domain-migrate %s (domain format %s)\n", Version, domain.TargetVersion)
		},
	}
}
