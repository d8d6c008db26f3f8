package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/search"
	"github.com/ogdevs/backoffice-client/models"
)

type testModel struct {
	model   appModel
	queries chan string
	store   *notify.NotificationStore
	copied  []string
}

func newTestModel(t *testing.T) *testModel {
	t.Helper()
	tm := &testModel{
		queries: make(chan string, 16),
		store:   notify.NewNotificationStore(),
	}
	deps := Dependencies{
		Queries:       tm.queries,
		Results:       search.NewResultStore(),
		Notifications: tm.store,
		Status:        notify.NewStatusStore(),
		BuildInfo:     models.NewAppBuildInfo("1.0.0", "", ""),
		Clipboard: func(s string) error {
			tm.copied = append(tm.copied, s)
			return nil
		},
	}
	feed := newQueryFeed(tm.queries)
	m, unsubscribe := newAppModel(deps, feed)
	t.Cleanup(func() {
		unsubscribe()
		feed.Close()
	})
	tm.model = m
	return tm
}

func (tm *testModel) send(msg tea.Msg) tea.Cmd {
	next, cmd := tm.model.Update(msg)
	tm.model = next.(appModel)
	return cmd
}

func (tm *testModel) typeText(s string) {
	for _, r := range s {
		tm.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppModel_TypingFeedsQueries(t *testing.T) {
	tm := newTestModel(t)

	tm.typeText("ab")

	assert.Equal(t, "ab", tm.model.input.Value())
	require.Eventually(t, func() bool {
		for {
			select {
			case q := <-tm.queries:
				if q == "ab" {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)
}

func TestAppModel_QuitKeyTypesWhileEditing(t *testing.T) {
	tm := newTestModel(t)

	tm.send(runes("q"))

	assert.Equal(t, "q", tm.model.input.Value())
	assert.True(t, tm.model.inputFocused)
}

func TestAppModel_ResultsNavigationAndCopy(t *testing.T) {
	tm := newTestModel(t)
	tm.send(resultsMsg{Query: "pay", Items: []models.SearchResult{
		{ID: "p-1", EntityType: "Process", DisplayName: "Payroll"},
		{ID: "u-7", EntityType: models.UserEntityType, DisplayName: "payet"},
	}})

	tm.send(tea.KeyMsg{Type: tea.KeyDown})
	require.False(t, tm.model.inputFocused)

	tm.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, tm.model.results.idx)

	cmd := tm.send(runes("y"))
	require.NotNil(t, cmd)
	tm.send(cmd())

	assert.Equal(t, []string{"u-7"}, tm.copied)
	assert.Equal(t, "Copied u-7", tm.model.status)

	tm.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, tm.model.inputFocused)
}

func TestAppModel_EnterWithoutResultsStaysInInput(t *testing.T) {
	tm := newTestModel(t)

	tm.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, tm.model.inputFocused)
}

func TestAppModel_ClearNotificationsNeedsConfirmation(t *testing.T) {
	tm := newTestModel(t)
	tm.store.Append(models.AuditChannel, models.Notification{ID: 1, Message: "Audit ID: 1"})
	tm.send(notificationsMsg(tm.store.All()))

	tm.send(tea.KeyMsg{Type: tea.KeyTab})
	tm.send(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, paneAudit, tm.model.pane)

	tm.send(runes("d"))
	require.True(t, tm.model.showConfirm)
	assert.Contains(t, tm.model.View(), "Clear all audit notifications?")

	tm.send(runes("n"))
	assert.Len(t, tm.store.Snapshot(models.AuditChannel), 1)

	tm.send(runes("d"))
	tm.send(runes("y"))
	assert.False(t, tm.model.showConfirm)
	assert.Empty(t, tm.store.Snapshot(models.AuditChannel))
}

func TestAppModel_ErrorAlertOpensOverlay(t *testing.T) {
	tm := newTestModel(t)

	tm.send(alertMsg(alert.Alert{Level: alert.Error, Message: "Unable to reconnect to WebSocket after multiple attempts."}))

	require.True(t, tm.model.showError)
	assert.Contains(t, tm.model.View(), "Unable to reconnect")

	tm.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, tm.model.showError)
}

func TestAppModel_InfoAlertIsTransient(t *testing.T) {
	tm := newTestModel(t)

	tm.send(alertMsg(alert.Alert{Level: alert.Info, Message: "New Process Notification: ID: 3"}))
	require.Contains(t, tm.model.status, "New Process Notification")
	seq := tm.model.statusSeq

	tm.send(clearStatusMsg{seq: seq - 1})
	assert.NotEmpty(t, tm.model.status)

	tm.send(clearStatusMsg{seq: seq})
	assert.Empty(t, tm.model.status)
}

func TestAppModel_HeaderShowsState(t *testing.T) {
	tm := newTestModel(t)

	tm.send(statusMsg(models.Failed))

	assert.True(t, strings.Contains(tm.model.header(), "failed"))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefg", 5))
	assert.Equal(t, "éé", fitText("ééé", 2))
}
