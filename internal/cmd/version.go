package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shopctl version %s\n", version)

			// Check failures stay silent.
			info := update.NewChecker().Check(cmd.Context(), version)
			if info != nil && info.Outdated {
				errOut := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", info.Current, info.Latest)
				_, _ = fmt.Fprintf(errOut, "Download: %s\n", info.URL)
			}
		},
	}
}
