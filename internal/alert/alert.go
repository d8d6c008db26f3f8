// Package alert delivers short user-facing messages (toasts in the web
// back-office) to whatever sink the running mode provides.
package alert

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ogdevs/backoffice-client/internal/logger"
)

// Level is the severity of an alert.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Alert is a single displayed message.
type Alert struct {
	Level   Level
	Message string
	At      time.Time
}

// Alerter shows messages to the user.
type Alerter interface {
	ShowInfo(msg string)
	ShowWarning(msg string)
	ShowError(msg string)
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	timeStyle    = lipgloss.NewStyle().Faint(true)
)

// Render formats a for a terminal line.
func Render(a Alert) string {
	var badge string
	switch a.Level {
	case Warning:
		badge = warningStyle.Render("WARN ")
	case Error:
		badge = errorStyle.Render("ERROR")
	default:
		badge = infoStyle.Render("INFO ")
	}
	return fmt.Sprintf("%s %s %s", timeStyle.Render(a.At.Format("15:04:05")), badge, a.Message)
}

// Terminal writes styled alerts to w, one per line.
type Terminal struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, now: time.Now}
}

func (t *Terminal) ShowInfo(msg string)    { t.show(Info, msg) }
func (t *Terminal) ShowWarning(msg string) { t.show(Warning, msg) }
func (t *Terminal) ShowError(msg string)   { t.show(Error, msg) }

func (t *Terminal) show(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, Render(Alert{Level: level, Message: msg, At: t.now()}))
}

// Log records alerts in the structured log. Used when no terminal is attached.
type Log struct {
	logger *logger.Logger
}

// NewLog returns a sink logging through the "alert" component logger.
func NewLog(log *logger.Logger) *Log {
	return &Log{logger: log.WithComponent("alert")}
}

func (l *Log) ShowInfo(msg string)    { l.logger.Info().Msg(msg) }
func (l *Log) ShowWarning(msg string) { l.logger.Warn().Msg(msg) }
func (l *Log) ShowError(msg string)   { l.logger.Error().Msg(msg) }

// Channel forwards alerts to a buffered channel, dropping them when the
// consumer falls behind. The TUI reads from C.
type Channel struct {
	C   chan Alert
	now func() time.Time
}

// NewChannel returns a sink buffering up to size alerts.
func NewChannel(size int) *Channel {
	return &Channel{C: make(chan Alert, size), now: time.Now}
}

func (c *Channel) ShowInfo(msg string)    { c.send(Info, msg) }
func (c *Channel) ShowWarning(msg string) { c.send(Warning, msg) }
func (c *Channel) ShowError(msg string)   { c.send(Error, msg) }

func (c *Channel) send(level Level, msg string) {
	select {
	case c.C <- Alert{Level: level, Message: msg, At: c.now()}:
	default:
	}
}

// Multi fans every alert out to all sinks.
type Multi []Alerter

func (m Multi) ShowInfo(msg string) {
	for _, a := range m {
		a.ShowInfo(msg)
	}
}

func (m Multi) ShowWarning(msg string) {
	for _, a := range m {
		a.ShowWarning(msg)
	}
}

func (m Multi) ShowError(msg string) {
	for _, a := range m {
		a.ShowError(msg)
	}
}

// Recorder keeps every alert in memory.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

func (r *Recorder) ShowInfo(msg string)    { r.add(Info, msg) }
func (r *Recorder) ShowWarning(msg string) { r.add(Warning, msg) }
func (r *Recorder) ShowError(msg string)   { r.add(Error, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, Alert{Level: level, Message: msg, At: time.Now()})
}

// Alerts returns a copy of everything recorded so far.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Messages returns the recorded messages of the given level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, a := range r.Alerts() {
		if a.Level == level {
			out = append(out, a.Message)
		}
	}
	return out
}
