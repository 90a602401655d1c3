package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"folio.dev/internal/projects"
	"folio.dev/internal/services"
)

var projectsSort string

// projectsCmd prints the project payload the pages are built from
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Print the ordered project list as JSON",
	Long: `Loads every project (applying GitHub data when GITHUB_ENRICH is set),
orders it and prints the cleaned payload.

Sort orders:
  - showcase: maintained projects first, then by name
  - ranked:   most stars first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := projects.ParsePolicy(projectsSort)
		if err != nil {
			return err
		}

		source, cleanup, err := services.NewProjectSource(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		payload, err := services.NewProjectService(source, logger).Payload(cmd.Context(), policy)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsSort, "sort", "s", "showcase", "Sort order: showcase or ranked")
}
