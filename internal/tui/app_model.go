package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/search"
	"github.com/ogdevs/backoffice-client/models"
)

const statusLifetime = 4 * time.Second

type pane int

const (
	paneSearch pane = iota
	paneProcess
	paneAudit
)

var paneTitles = []string{"Search", "Process", "Audit"}

func (p pane) channel() models.NotificationChannel {
	if p == paneAudit {
		return models.AuditChannel
	}
	return models.ProcessChannel
}

type appModel struct {
	deps Dependencies
	feed *queryFeed

	resultsCh       <-chan search.Results
	notificationsCh <-chan notify.Snapshot
	statusCh        <-chan models.ConnectionState

	pane          pane
	inputFocused  bool
	input         textinput.Model
	results       resultsModel
	showDetail    bool
	notifications notify.Snapshot
	state         models.ConnectionState

	status    string
	statusSeq int

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingClear  models.NotificationChannel
	showBuildInfo bool
}

// newAppModel subscribes to every store. The returned function ends the
// subscriptions.
func newAppModel(deps Dependencies, feed *queryFeed) (appModel, func()) {
	input := textinput.New()
	input.Placeholder = "Search processes, tasks, users..."
	input.Prompt = "/ "
	input.Width = 50
	input.Focus()

	resultsCh, cancelResults := deps.Results.Subscribe()
	notificationsCh, cancelNotifications := deps.Notifications.Subscribe()
	statusCh, cancelStatus := deps.Status.Subscribe()

	m := appModel{
		deps:            deps,
		feed:            feed,
		resultsCh:       resultsCh,
		notificationsCh: notificationsCh,
		statusCh:        statusCh,
		inputFocused:    true,
		input:           input,
		state:           models.Disconnected,
	}
	return m, func() {
		cancelResults()
		cancelNotifications()
		cancelStatus()
	}
}

func listen[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return wrap(v)
	}
}

func (m appModel) listenResults() tea.Cmd {
	return listen(m.resultsCh, func(r search.Results) tea.Msg { return resultsMsg(r) })
}

func (m appModel) listenNotifications() tea.Cmd {
	return listen(m.notificationsCh, func(s notify.Snapshot) tea.Msg { return notificationsMsg(s) })
}

func (m appModel) listenStatus() tea.Cmd {
	return listen(m.statusCh, func(s models.ConnectionState) tea.Msg { return statusMsg(s) })
}

func (m appModel) listenAlerts() tea.Cmd {
	return listen(m.deps.Alerts, func(a alert.Alert) tea.Msg { return alertMsg(a) })
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.listenResults(),
		m.listenNotifications(),
		m.listenStatus(),
		m.listenAlerts(),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case resultsMsg:
		m.results.set(msg.Query, msg.Items)
		if len(msg.Items) == 0 {
			m.showDetail = false
		}
		return m, m.listenResults()
	case notificationsMsg:
		m.notifications = notify.Snapshot(msg)
		return m, m.listenNotifications()
	case statusMsg:
		m.state = models.ConnectionState(msg)
		return m, m.listenStatus()
	case alertMsg:
		a := alert.Alert(msg)
		if a.Level == alert.Error {
			m.showErrorf(a.Message)
			return m, m.listenAlerts()
		}
		cmd := m.setStatus(alert.Render(a))
		return m, tea.Batch(cmd, m.listenAlerts())
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf(fmt.Sprintf("copy to clipboard: %v", msg.err))
			return m, nil
		}
		return m, m.setStatus("Copied " + msg.id)
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	if m.pane == paneSearch && m.inputFocused {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showConfirm {
		return m.updateConfirm(msg)
	}
	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if key.Matches(msg, keys.tab) {
		m.pane = (m.pane + 1) % pane(len(paneTitles))
		return m, nil
	}
	if key.Matches(msg, keys.backtab) {
		m.pane = (m.pane + pane(len(paneTitles)) - 1) % pane(len(paneTitles))
		return m, nil
	}

	if m.pane == paneSearch && m.inputFocused {
		if msg.Type == tea.KeyDown || key.Matches(msg, keys.enter) {
			if len(m.results.items) > 0 {
				m.inputFocused = false
				m.input.Blur()
			}
			return m, nil
		}
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
		return m, nil
	}

	if m.pane == paneSearch {
		return m.updateResults(msg)
	}
	return m.updateNotifications(msg)
}

func (m appModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.feed.Push(after)
	}
	return m, cmd
}

func (m appModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.results.idx == 0 {
			m.inputFocused = true
			m.showDetail = false
			return m, m.input.Focus()
		}
		m.results.idx--
	case key.Matches(msg, keys.down):
		if m.results.idx < len(m.results.items)-1 {
			m.results.idx++
		}
	case key.Matches(msg, keys.enter):
		m.showDetail = !m.showDetail
	case key.Matches(msg, keys.esc):
		m.inputFocused = true
		m.showDetail = false
		return m, m.input.Focus()
	case key.Matches(msg, keys.copy):
		item, ok := m.results.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.deps.Clipboard, item.ID)
	}
	return m, nil
}

func (m appModel) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.clear) {
		ch := m.pane.channel()
		if len(m.notifications.Get(ch)) == 0 {
			return m, nil
		}
		m.showConfirm = true
		m.pendingClear = ch
		m.confirm.message = fmt.Sprintf("Clear all %s notifications?", ch)
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		if m.pendingClear != "" {
			m.deps.Notifications.Clear(m.pendingClear)
			m.pendingClear = ""
		}
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.pendingClear = ""
	}
	return m, nil
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func cmdCopyToClipboard(write func(string) error, id string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{id: id, err: write(id)}
	}
}

func (m appModel) View() string {
	switch {
	case m.showError:
		return appStyle.Render(m.errorOverlay.View())
	case m.showConfirm:
		return appStyle.Render(m.confirm.View())
	case m.showBuildInfo:
		return appStyle.Render(renderBuildInfoWindow(m.deps.BuildInfo))
	}

	var body, hotKeys string
	if m.pane == paneSearch {
		body, hotKeys = m.searchView()
	} else {
		body, hotKeys = m.notificationsView()
	}
	if m.status != "" {
		body += "\n\n" + m.status
	}

	return appStyle.Render(renderPage(m.header(), body, hotKeys))
}

func (m appModel) header() string {
	tabs := make([]string, len(paneTitles))
	for i, title := range paneTitles {
		switch pane(i) {
		case paneProcess:
			title = fmt.Sprintf("%s (%d)", title, len(m.notifications.Process))
		case paneAudit:
			title = fmt.Sprintf("%s (%d)", title, len(m.notifications.Audit))
		}
		if pane(i) == m.pane {
			title = "[" + title + "]"
		}
		tabs[i] = title
	}

	state := string(m.state)
	if style, ok := stateStyles[state]; ok {
		state = style.Render(state)
	}
	return "BACK-OFFICE  " + strings.Join(tabs, "  ") + "  realtime: " + state
}

func (m appModel) searchView() (string, string) {
	body := m.input.View() + "\n\n" + m.results.View(!m.inputFocused)
	if m.showDetail {
		if item, ok := m.results.current(); ok {
			body += "\n\n" + overlayBoxStyle.Render(renderResultDetail(item))
		}
	}
	if m.inputFocused {
		return body, "enter/down: results  tab: notifications"
	}
	return body, "enter: details  y: copy id  esc: edit query  tab: notifications  v: about  q: quit"
}

func (m appModel) notificationsView() (string, string) {
	list := m.notifications.Get(m.pane.channel())
	if len(list) == 0 {
		return "No notifications", "tab: next  v: about  q: quit"
	}

	var b strings.Builder
	for i := len(list) - 1; i >= 0; i-- {
		n := list[i]
		b.WriteString(helpStyle.Render(n.Timestamp.Format("15:04:05")))
		b.WriteString("  ")
		if n.ID != 0 {
			b.WriteString(fmt.Sprintf("#%d ", n.ID))
		}
		b.WriteString(fitText(n.Message, 80))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), "d: clear  tab: next  v: about  q: quit"
}
