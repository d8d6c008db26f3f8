package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/client"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

// AppFactory builds the runtime for one command invocation.
type AppFactory func(ctx context.Context, cfg *config.ClientConfig, opts client.Options) (*client.App, error)

type root struct {
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
	flags     *config.StructuredConfig
	newApp    AppFactory
}

// NewRootCmd assembles the command tree. A nil factory uses [client.NewApp].
func NewRootCmd(buildInfo models.AppBuildInfo, log *logger.Logger, factory AppFactory) *cobra.Command {
	r := &root{buildInfo: buildInfo, logger: log, newApp: factory}
	if r.newApp == nil {
		r.newApp = func(ctx context.Context, cfg *config.ClientConfig, opts client.Options) (*client.App, error) {
			return client.NewApp(ctx, cfg, buildInfo, log, opts)
		}
	}

	cmd := &cobra.Command{
		Use:           "backoffice",
		Short:         "Terminal client of the back-office",
		Long:          "Keeps the realtime notification channel open, searches entities and users, and manages back-office resources.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.dashboard(cmd)
		},
	}
	r.flags = config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newDashboardCmd(r),
		newWatchCmd(r),
		newSearchCmd(r),
		newLoginCmd(r),
		newLogoutCmd(r),
		newResourceCmd(r),
		newChatCmd(r),
		newVersionCmd(r),
	)
	return cmd
}

// Execute runs the command tree against the process arguments.
func Execute(ctx context.Context, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	return NewRootCmd(buildInfo, log, nil).ExecuteContext(ctx)
}

func (r *root) config() (*config.ClientConfig, error) {
	cfg, err := config.GetClientConfig(r.flags)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app builds the runtime for a non-interactive command: alerts are written
// to stderr, login links to stdout and deletions are confirmed on stdin
// unless assumeYes is set.
func (r *root) app(cmd *cobra.Command, assumeYes bool) (*client.App, error) {
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}

	opts := client.Options{
		Alerter:   alert.NewTerminal(cmd.ErrOrStderr()),
		Redirect:  printRedirect(cmd.OutOrStdout()),
		Confirmer: newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()),
	}
	if assumeYes {
		opts.Confirmer = alwaysConfirm
	}

	return r.newApp(cmd.Context(), cfg, opts)
}

func (r *root) dashboard(cmd *cobra.Command) error {
	cfg, err := r.config()
	if err != nil {
		return err
	}

	app, err := r.newApp(cmd.Context(), cfg, client.Options{
		Redirect: printRedirect(cmd.ErrOrStderr()),
	})
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(cmd.Context())
}

func printRedirect(w io.Writer) func(context.Context, string) error {
	return func(_ context.Context, authURL string) error {
		_, err := fmt.Fprintf(w, "Log in at %s\nor run \"backoffice login\".\n", authURL)
		return err
	}
}

func newDashboardCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive search and notification dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.dashboard(cmd)
		},
	}
}

func newVersionCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
				r.buildInfo.BuildVersion(), r.buildInfo.BuildDate(), r.buildInfo.BuildCommit())
			return nil
		},
	}
}
