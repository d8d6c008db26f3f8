package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ogdevs/backoffice-client/models"
)

func newSearchCmd(r *root) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entities and users",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			items := app.Search(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printResults(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func printResults(w io.Writer, items []models.SearchResult) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%-10s %-8s %s", it.EntityType, it.ID, it.DisplayName)
		if it.Description != "" {
			fmt.Fprintf(w, " - %s", it.Description)
		}
		fmt.Fprintln(w)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
