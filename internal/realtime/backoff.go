package realtime

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// reconnectDelays yields base × factor^attempt without jitter and without a
// ceiling; the attempt cap is what bounds reconnection.
type reconnectDelays struct {
	b *backoff.ExponentialBackOff
}

func newReconnectDelays(base time.Duration, factor float64) *reconnectDelays {
	return &reconnectDelays{b: &backoff.ExponentialBackOff{
		InitialInterval:     base,
		RandomizationFactor: 0,
		Multiplier:          factor,
		MaxInterval:         time.Duration(math.MaxInt64),
	}}
}

// delay returns the wait before reconnect attempt number attempt (0-based).
func (r *reconnectDelays) delay(attempt int) time.Duration {
	r.b.Reset()
	d := r.b.NextBackOff()
	for i := 0; i < attempt; i++ {
		d = r.b.NextBackOff()
	}
	return d
}
