package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cityalgo/cityalgo/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cityalgo %s (commit %s, branch %s)\n", build.Version, build.Commit, build.Branch)
		},
	}
}
