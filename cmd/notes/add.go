package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.ctrl.Create(cmd.Context(), title, content)
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note created: %s\n", color.New(color.FgGreen).Sprint(note.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	cmd.Flags().StringVarP(&content, "content", "m", "", "Note content (required)")
	return cmd
}
