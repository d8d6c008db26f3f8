// Package workers runs the long-lived background parts of the client side by
// side and stops them together.
package workers

import "context"

// Worker blocks in Run until ctx is done or it fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a function to Worker.
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error { return f(ctx) }
