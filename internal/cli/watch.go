package cli

import (
	"github.com/spf13/cobra"
)

func newWatchCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the realtime notification channel open",
		Long: "Connects the realtime channel, reconnects with backoff after failures and, " +
			"when --status-address is set, serves the connection state and notifications over HTTP.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := r.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Watch(cmd.Context())
		},
	}
}
