package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notes-client/internal/converter"
	"notes-client/internal/state"
)

const listPreviewLen = 40

func newListCmd(a *app) *cobra.Command {
	var (
		search string
		sortBy string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, optionally filtered and sorted by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortBy != "" {
				d, ok := state.ParseDirection(sortBy)
				if !ok {
					return fmt.Errorf("invalid --sort value %q (want asc or desc)", sortBy)
				}
				a.ctrl.SortAs(d)
			}
			a.ctrl.SetSearch(search)

			if err := a.ctrl.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("list notes: %w", err)
			}
			notes := a.ctrl.Visible()

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(converter.ModelsToJSONs(notes))
			}

			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes found.")
				return nil
			}

			idColor := color.New(color.FgCyan)
			titleColor := color.New(color.Bold)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCONTENT")
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					idColor.Sprint(n.ID),
					titleColor.Sprint(n.Title),
					truncate(n.Content, listPreviewLen))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive filter on title and content")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by title: asc or desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
