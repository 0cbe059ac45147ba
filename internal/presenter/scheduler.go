package presenter

import (
	"context"
)

// Scheduler runs blocking work (network calls) away from the storefront's
// thread of control. The function work returns is applied back on that
// thread; it may be nil.
type Scheduler interface {
	Go(work func(ctx context.Context) func())
}

// Inline runs work and its continuation immediately on the caller's goroutine.
// Used by the CLI tools and tests, where one goroutine drives the storefront.
type Inline struct {
	Ctx context.Context
}

// Go implements Scheduler
func (s Inline) Go(work func(ctx context.Context) func()) {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if apply := work(ctx); apply != nil {
		apply()
	}
}
