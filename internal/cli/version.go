package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build; "dev" means a local build.
var Version = "dev"

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := Version
			commit := ""
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						commit = s.Value
					}
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]string{"version": v, "commit": commit},
			})
		},
	}
}
