package cli

import (
	"github.com/spf13/cobra"

	"bingo-cli/internal/identity"
)

func newWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.service().CurrentUser(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"user":        user,
					"displayName": identity.DisplayName(user),
					"anonymous":   identity.IsAnonymous(user),
				},
			})
		},
	}
	return cmd
}
