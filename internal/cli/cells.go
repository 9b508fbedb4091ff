package cli

import (
	"github.com/spf13/cobra"
)

func newCellsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cells",
		Short: "Cell commands",
	}
	cmd.AddCommand(newCellsSetCmd(app))
	cmd.AddCommand(newCellsMarkCmd(app))
	return cmd
}

func newCellsSetCmd(app *App) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <board-id> <cell-id>",
		Short: "Set a cell's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := app.service().UpdateCell(cmd.Context(), args[0], args[1], value)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cell})
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Cell text or image URL")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newCellsMarkCmd(app *App) *cobra.Command {
	var unmark bool

	cmd := &cobra.Command{
		Use:   "mark <board-id> <cell-id>",
		Short: "Mark (or unmark) a cell as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := app.service().MarkCell(cmd.Context(), args[0], args[1], !unmark)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cell})
		},
	}

	cmd.Flags().BoolVar(&unmark, "unmark", false, "Clear the mark instead of setting it")
	return cmd
}
