package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ogdevs/backoffice-client/internal/adapter"
	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/auth"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/handler"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/realtime"
	"github.com/ogdevs/backoffice-client/internal/resource"
	"github.com/ogdevs/backoffice-client/internal/search"
	"github.com/ogdevs/backoffice-client/internal/server"
	"github.com/ogdevs/backoffice-client/internal/store"
	"github.com/ogdevs/backoffice-client/internal/tui"
	"github.com/ogdevs/backoffice-client/internal/workers"
	"github.com/ogdevs/backoffice-client/models"
)

const (
	alertBuffer           = 64
	defaultConnectTimeout = 10 * time.Second
)

// Options customise the runtime for the command being run.
type Options struct {
	// Alerter receives user-facing alerts in addition to the log.
	Alerter alert.Alerter
	// Redirect is handed the login URL when a session is missing.
	Redirect auth.RedirectFunc
	// Confirmer approves resource deletions.
	Confirmer resource.Confirmer
	// Realtime overrides collaborators of the realtime channel.
	Realtime []realtime.Option
}

var _ Client = (*App)(nil)

// App owns every client component for one process: the credential cache,
// the session, REST collaborators, the realtime channel, the search pipeline
// and the shared stores the views read from. Exported fields are read by the
// CLI commands; they are set once by [NewApp].
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	storages *store.ClientStorages
	alerts   alert.Alerter
	alertCh  *alert.Channel

	Auth          *auth.Client
	Resources     resource.Catalog
	Chat          adapter.ChatRooms
	Notifications *notify.NotificationStore
	Status        *notify.StatusStore
	Results       *search.ResultStore
	Channel       *realtime.Channel
	Pipeline      *search.Pipeline
}

// NewApp opens the credential cache and wires the components from cfg.
// Nothing is dialed until Run, Watch or a realtime command needs it. Close
// releases what NewApp opened.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger, opts Options) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create credential storage: %w", err)
	}

	alertCh := alert.NewChannel(alertBuffer)
	alerts := alert.Multi{alert.NewLog(log.WithComponent("alert")), alertCh}
	if opts.Alerter != nil {
		alerts = append(alerts, opts.Alerter)
	}

	authClient := auth.NewClient(cfg.Auth, storages.Credentials, opts.Redirect, log)

	rest, err := adapter.NewRESTClient(cfg.Adapter, authClient, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create REST client: %w", err)
	}

	a := &App{
		cfg:           cfg,
		buildInfo:     buildInfo,
		logger:        log,
		storages:      storages,
		alerts:        alerts,
		alertCh:       alertCh,
		Auth:          authClient,
		Resources:     resource.NewCatalog(adapter.NewResources(rest), opts.Confirmer, alerts, log),
		Chat:          adapter.NewChatRooms(rest),
		Notifications: notify.NewNotificationStore(),
		Status:        notify.NewStatusStore(),
		Results:       search.NewResultStore(),
	}

	a.Channel = realtime.NewChannel(
		realtime.OptionsFromConfig(cfg.Realtime, cfg.Auth.MinValidity),
		authClient, a.Notifications, a.Status, alerts, log, opts.Realtime...,
	)
	a.Pipeline = search.NewPipeline(
		adapter.NewEntitySearcher(rest),
		adapter.NewUserDirectory(rest, cfg.Adapter.UserCacheTTL),
		a.Results, cfg.Search, log,
	)

	return a, nil
}

// Alerts returns the alerter every component of the app reports to.
func (a *App) Alerts() alert.Alerter {
	return a.alerts
}

// Run opens the interactive dashboard. It is the default command.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queries := make(chan string)
	ui, err := tui.New(tui.Dependencies{
		Queries:       queries,
		Results:       a.Results,
		Notifications: a.Notifications,
		Status:        a.Status,
		Alerts:        a.alertCh.C,
		BuildInfo:     a.buildInfo,
	}, a.logger)
	if err != nil {
		return err
	}

	ws, err := a.backgroundWorkers()
	if err != nil {
		return err
	}
	ws.Add(workers.Func(func(ctx context.Context) error {
		return a.Pipeline.Run(ctx, queries)
	}))
	ws.Add(workers.Func(func(ctx context.Context) error {
		defer cancel()
		return ui.Run(ctx)
	}))

	return ws.Run(ctx)
}

// Watch keeps the realtime channel and the status endpoint running until ctx
// is done.
func (a *App) Watch(ctx context.Context) error {
	ws, err := a.backgroundWorkers()
	if err != nil {
		return err
	}
	return ws.Run(ctx)
}

func (a *App) backgroundWorkers() (*workers.Workers, error) {
	ws := workers.NewWorkers(workers.NewRealtimeWorker(a.Channel, a.logger))

	if a.cfg.Status.Address == "" {
		return ws, nil
	}

	handlers, err := handler.NewHandlers(handler.Dependencies{
		Connection:    a.Channel,
		Notifications: a.Notifications,
		BuildInfo:     a.buildInfo,
	}, a.cfg.Status, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create status handlers: %w", err)
	}
	srv, err := server.NewServer(handlers, a.cfg.Status, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create status server: %w", err)
	}
	ws.Add(srv)
	return ws, nil
}

// Search runs one lookup without debouncing and publishes it to the result
// store.
func (a *App) Search(ctx context.Context, query string) []models.SearchResult {
	items := a.Pipeline.Lookup(ctx, query)
	a.Results.Update(query, items)
	return items
}

// SendChatMessage connects the realtime channel, publishes one message and
// disconnects again.
func (a *App) SendChatMessage(ctx context.Context, req models.MessageRequest) error {
	if err := resource.NewValidator().Struct(req); err != nil {
		return fmt.Errorf("%w: %w", resource.ErrValidation, err)
	}
	if err := a.connectAndWait(ctx); err != nil {
		return err
	}
	defer a.Channel.Disconnect()

	return a.Channel.SendChatMessage(ctx, req)
}

// FollowRoom hands every message of roomID to fn until ctx is done.
func (a *App) FollowRoom(ctx context.Context, roomID int64, fn func(models.ChatMessage)) error {
	unsubscribe := a.Channel.SubscribeRoom(roomID, fn)
	defer unsubscribe()

	return a.Watch(ctx)
}

// connectAndWait blocks until the channel reports connected.
func (a *App) connectAndWait(ctx context.Context) error {
	updates, cancel := a.Status.Subscribe()
	defer cancel()

	if err := a.Channel.Connect(ctx); err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return err
		}
		a.logger.Warn().Err(err).Str("func", "App.connectAndWait").Msg("first attempt failed")
	}

	timeout := time.NewTimer(a.connectTimeout())
	defer timeout.Stop()

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				return ErrChannelFailed
			}
			switch state {
			case models.Connected:
				return nil
			case models.Failed:
				return ErrChannelFailed
			}
		case <-timeout.C:
			a.Channel.Disconnect()
			return ErrConnectTimeout
		case <-ctx.Done():
			a.Channel.Disconnect()
			return ctx.Err()
		}
	}
}

func (a *App) connectTimeout() time.Duration {
	if a.cfg.Adapter.RequestTimeout > 0 {
		return a.cfg.Adapter.RequestTimeout
	}
	return defaultConnectTimeout
}

// Close disconnects the channel, clears both notification lists and releases
// the credential cache.
func (a *App) Close() error {
	a.Channel.Disconnect()
	a.Notifications.ClearAll()

	a.Notifications.Close()
	a.Status.Close()
	a.Results.Close()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Close").Msg("close credential storage")
		return err
	}
	return nil
}
