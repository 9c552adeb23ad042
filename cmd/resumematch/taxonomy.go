package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-analyzer-backend/internal/taxonomy"
)

func newTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the effective keyword taxonomy as YAML",
		Long:  "Print the keyword taxonomy the matcher would use, after applying --taxonomy and --mode. The output is a valid taxonomy file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadTaxonomy(cmd)
			if err != nil {
				return err
			}
			data, err := taxonomy.Marshal(loaded.Taxonomy, loaded.Mode)
			if err != nil {
				return fmt.Errorf("failed to render taxonomy: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# origin: %s\n", loaded.Origin)
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
