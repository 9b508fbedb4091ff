package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bingo-cli/internal/api"
	"bingo-cli/internal/format"
	"bingo-cli/internal/tui"
)

type App struct {
	Server     string
	Token      string
	PrettyJSON bool
	TimeoutSec int
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "bingo",
		Short:        "Terminal client for shared bingo boards",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  bingo

  # Scriptable commands
  bingo boards list --search "road trip"
  bingo boards show alice/road-trip-2026
  bingo cells set <board-id> <cell-id> --value "Spotted a moose"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return tui.Run(app.service(), app.Server)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("BINGO_SERVER", "https://bingo.example.com"), "Board service base URL")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("BINGO_TOKEN", ""), "Bearer token (optional; anonymous without it)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().IntVar(&app.TimeoutSec, "timeout", envIntOr("BINGO_TIMEOUT_SECONDS", 15), "Request timeout in seconds")

	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newCellsCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func (app *App) service() api.Service {
	return api.NewClient(app.Server, app.Token, time.Duration(app.TimeoutSec)*time.Second)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envIntOr(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	if v, ok := api.IsValidation(err); ok {
		// Field-level messages as JSON so scripts can route them to the right input.
		_ = format.WriteJSON(cmd.ErrOrStderr(), map[string]any{"error": "validation", "fields": v.Violations}, true)
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
