package alert

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogdevs/backoffice-client/internal/logger"
)

func TestTerminal_WritesOneLinePerAlert(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.now = func() time.Time { return time.Date(2026, 1, 1, 9, 5, 7, 0, time.UTC) }

	term.ShowInfo("New Process Notification: ID: 1 done")
	term.ShowError("WebSocket connection error: boom")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "09:05:07")
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "New Process Notification: ID: 1 done")
	assert.Contains(t, lines[1], "ERROR")
}

func TestRender_Levels(t *testing.T) {
	at := time.Now()
	assert.Contains(t, Render(Alert{Level: Warning, Message: "w", At: at}), "WARN")
	assert.Contains(t, Render(Alert{Level: Info, Message: "i", At: at}), "INFO")
	assert.Contains(t, Render(Alert{Level: Error, Message: "e", At: at}), "ERROR")
}

func TestChannel_DropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	c.ShowInfo("first")
	c.ShowWarning("second")

	got := <-c.C
	assert.Equal(t, "first", got.Message)
	assert.Equal(t, Info, got.Level)
	select {
	case a := <-c.C:
		t.Fatalf("unexpected alert %q", a.Message)
	default:
	}
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, b, NewLog(logger.Nop())}

	m.ShowInfo("i")
	m.ShowWarning("w")
	m.ShowError("e")

	for _, r := range []*Recorder{a, b} {
		assert.Equal(t, []string{"i"}, r.Messages(Info))
		assert.Equal(t, []string{"w"}, r.Messages(Warning))
		assert.Equal(t, []string{"e"}, r.Messages(Error))
		assert.Len(t, r.Alerts(), 3)
	}
}
