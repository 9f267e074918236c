package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title and/or content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("content") {
				return fmt.Errorf("nothing to change: pass --title and/or --content")
			}

			if err := a.ctrl.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("load notes: %w", err)
			}
			if _, err := a.ctrl.BeginEdit(id); err != nil {
				return fmt.Errorf("note %s: %w", id, err)
			}
			if flags.Changed("title") {
				if err := a.ctrl.SetDraftTitle(title); err != nil {
					return err
				}
			}
			if flags.Changed("content") {
				if err := a.ctrl.SetDraftContent(content); err != nil {
					return err
				}
			}

			note, err := a.ctrl.SaveEdit(cmd.Context())
			if err != nil {
				return fmt.Errorf("update note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s (%s)\n", note.ID, note.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New content")
	return cmd
}
