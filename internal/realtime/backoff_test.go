package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconnectDelays(t *testing.T) {
	d := newReconnectDelays(5*time.Second, 1.5)

	want := []time.Duration{
		5 * time.Second,
		7500 * time.Millisecond,
		11250 * time.Millisecond,
		16875 * time.Millisecond,
		25312500 * time.Microsecond,
	}
	for attempt, w := range want {
		assert.Equal(t, w, d.delay(attempt), "attempt %d", attempt)
	}

	// stateless between calls
	assert.Equal(t, 5*time.Second, d.delay(0))
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultEndpoint, o.Endpoint)
	assert.Equal(t, DefaultTopic, o.Topic)
	assert.Equal(t, DefaultSendPath, o.SendPath)
	assert.Equal(t, 5*time.Second, o.BaseDelay)
	assert.Equal(t, 1.5, o.Factor)
	assert.Equal(t, 5, o.MaxAttempts)
	assert.Equal(t, 30*time.Second, o.MinValidity)

	custom := Options{MaxAttempts: 2, Factor: 2}.withDefaults()
	assert.Equal(t, 2, custom.MaxAttempts)
	assert.Equal(t, 2.0, custom.Factor)
}
