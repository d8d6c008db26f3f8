// Package search implements the global search of the back-office: keystrokes
// are debounced, fanned out to the entity search and the user directory, and
// the merged rows are published to a shared [ResultStore].
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/ogdevs/backoffice-client/internal/adapter"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

// Defaults used when the config leaves the tuning unset.
const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultMinLength = 2

	noEmailDescription = "No email provided"
)

// Pipeline turns a stream of raw queries into result sets.
//
// Every distinct query that survives the debounce window is sent to both
// collaborators in parallel. A newer dispatch supersedes an older one, so a
// slow lookup never overwrites fresher results.
type Pipeline struct {
	entities adapter.EntitySearcher
	users    adapter.UserDirectory
	results  *ResultStore

	// debounce is the quiet period a query must survive before dispatch.
	debounce time.Duration

	// minLength is the rune count below which a query clears the results
	// instead of being dispatched.
	minLength int

	logger *logger.Logger

	// current identifies the only dispatch allowed to publish.
	mu      sync.Mutex
	current uint64
}

// NewPipeline wires a pipeline publishing into results. A negative debounce
// or a non-positive minimum length takes the package defaults; a zero
// debounce dispatches every query immediately.
func NewPipeline(
	entities adapter.EntitySearcher,
	users adapter.UserDirectory,
	results *ResultStore,
	cfg config.ClientSearch,
	log *logger.Logger,
) *Pipeline {
	p := &Pipeline{
		entities:  entities,
		users:     users,
		results:   results,
		debounce:  cfg.Debounce,
		minLength: cfg.MinLength,
		logger:    log.WithComponent("search"),
	}
	if p.debounce < 0 {
		p.debounce = DefaultDebounce
	}
	if p.minLength <= 0 {
		p.minLength = DefaultMinLength
	}
	return p
}

// Run consumes queries until in is closed or ctx is done. A query still
// waiting out the debounce window when in closes is dispatched before Run
// returns.
func (p *Pipeline) Run(ctx context.Context, in <-chan string) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
		waiting bool
		last    string
		hasLast bool

		cancelInflight context.CancelFunc = func() {}
		wg             sync.WaitGroup
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timerC = nil
	}
	defer func() {
		stopTimer()
		wg.Wait()
	}()

	dispatch := func(q string) {
		if hasLast && q == last {
			p.logger.Debug().Str("func", "Pipeline.Run").Str("query", q).Msg("duplicate query dropped")
			return
		}
		last, hasLast = q, true

		cancelInflight()
		qctx, cancel := context.WithCancel(ctx)
		cancelInflight = cancel
		id := p.advance()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			items := p.Lookup(qctx, q)
			p.publish(qctx, id, q, items)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			cancelInflight()
			return ctx.Err()

		case raw, ok := <-in:
			if !ok {
				if waiting {
					dispatch(pending)
				}
				return nil
			}

			q := strings.TrimSpace(raw)
			if utf8.RuneCountInString(q) < p.minLength {
				stopTimer()
				waiting, hasLast = false, false
				cancelInflight()
				p.advance()
				p.results.Clear()
				continue
			}

			pending, waiting = q, true
			stopTimer()
			timer = time.NewTimer(p.debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if waiting {
				waiting = false
				dispatch(pending)
			}
		}
	}
}

// advance invalidates every dispatch made so far.
func (p *Pipeline) advance() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	return p.current
}

func (p *Pipeline) publish(ctx context.Context, id uint64, q string, items []models.SearchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.current || ctx.Err() != nil {
		p.logger.Debug().Str("func", "Pipeline.publish").Str("query", q).Msg("stale results dropped")
		return
	}
	p.results.Update(q, items)
}

// Lookup runs both searches for q in parallel and merges them: entity rows
// first, then user rows. Either side failing contributes no rows.
func (p *Pipeline) Lookup(ctx context.Context, q string) []models.SearchResult {
	var entities, users []models.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := p.entities.SearchEntities(gctx, q)
		if err != nil {
			p.logger.Warn().Err(err).Str("func", "Pipeline.Lookup").Str("query", q).Msg("entity search failed")
			return nil
		}
		entities = res
		return nil
	})
	g.Go(func() error {
		res, err := p.users.SearchUsers(gctx, q)
		if err != nil {
			p.logger.Warn().Err(err).Str("func", "Pipeline.Lookup").Str("query", q).Msg("user search failed")
			return nil
		}
		users = UserResults(res)
		return nil
	})
	_ = g.Wait()

	merged := make([]models.SearchResult, 0, len(entities)+len(users))
	merged = append(merged, entities...)
	return append(merged, users...)
}

// UserResults maps directory entries to search rows.
func UserResults(users []models.UserSummary) []models.SearchResult {
	out := make([]models.SearchResult, 0, len(users))
	for _, u := range users {
		description := u.Email
		if description == "" {
			description = noEmailDescription
		}
		out = append(out, models.SearchResult{
			ID:            u.ID,
			EntityType:    models.UserEntityType,
			DisplayName:   u.Username,
			Description:   description,
			AssignedUsers: []string{u.Username},
		})
	}
	return out
}
