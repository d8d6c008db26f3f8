// Package tui is the interactive dashboard of the client: a search box wired
// to the search pipeline, the received notifications, and the realtime
// connection state.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atotto/clipboard"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/search"
	"github.com/ogdevs/backoffice-client/models"
)

var ErrMissingDependency = errors.New("tui dependency is missing")

// Dependencies are the stores the dashboard renders and the channel it feeds
// queries into. Queries is closed when the dashboard exits.
type Dependencies struct {
	Queries       chan<- string
	Results       *search.ResultStore
	Notifications *notify.NotificationStore
	Status        *notify.StatusStore
	Alerts        <-chan alert.Alert
	BuildInfo     models.AppBuildInfo

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// TUI runs the interactive dashboard as a bubbletea program.
type TUI struct {
	deps   Dependencies
	logger *logger.Logger

	programOptions []tea.ProgramOption
}

// New validates deps and returns a dashboard ready to Run. The query feed,
// both stores and the status store are required.
func New(deps Dependencies, log *logger.Logger) (*TUI, error) {
	if deps.Queries == nil || deps.Results == nil || deps.Notifications == nil || deps.Status == nil {
		return nil, ErrMissingDependency
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	return &TUI{
		deps:           deps,
		logger:         log,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// Run shows the dashboard until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	feed := newQueryFeed(t.deps.Queries)
	defer feed.Close()

	model, unsubscribe := newAppModel(t.deps, feed)
	defer unsubscribe()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programOptions...)
	_, err := tea.NewProgram(model, opts...).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("dashboard stopped")
	}
	return err
}
