package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/config"
)

func newCatalogCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the content catalog and list its problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				path = cfg.Catalog.Path
			}
			c, err := catalog.Load(path)
			if err != nil {
				return err
			}
			return printCatalog(cmd, c)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "catalog YAML file (default: configured or embedded catalog)")
	return cmd
}

func printCatalog(cmd *cobra.Command, c *catalog.Catalog) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, t := range c.Tracks() {
		fmt.Fprintf(w, "%s (%s)\n", t.Name, t.Author)
		for _, p := range c.ProblemsByTrack(t.ID) {
			fmt.Fprintf(w, "  %s\t%s\n", p.ID, p.Title)
		}
	}
	fmt.Fprintf(w, "%d sections, %d tracks, %d problems\n", len(c.Sections()), len(c.Tracks()), len(c.Problems()))
	return w.Flush()
}
