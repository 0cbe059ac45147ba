package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrLoopClosed is returned for work submitted to a stopped loop
var ErrLoopClosed = errors.New("session loop closed")

const taskQueueSize = 64

// Loop is a single goroutine that owns one storefront. Everything touching
// the storefront runs on it: callers use Do, and network work started with Go
// has its continuation applied on it as well.
type Loop struct {
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan func()
	done   chan struct{}

	mu      sync.Mutex
	pending int
	idle    []chan struct{}
}

// NewLoop starts a loop. It stops when parent is cancelled or Close is called.
func NewLoop(parent context.Context, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	l := &Loop{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan func(), taskQueueSize),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case task := <-l.tasks:
			l.exec(task)
		}
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Panic recovered in session loop", zap.Any("error", r))
		}
	}()
	task()
}

// post queues task on the loop; it reports false once the loop is stopped
func (l *Loop) post(task func()) bool {
	select {
	case <-l.ctx.Done():
		return false
	case l.tasks <- task:
		return true
	}
}

// Do runs fn on the loop and waits for its result
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("panic in session task: %v", r)
			}
		}()
		result <- fn()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return ErrLoopClosed
	case l.tasks <- task:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return ErrLoopClosed
	case err := <-result:
		return err
	}
}

// Go runs work on its own goroutine and applies the function it returns on the loop.
// It implements presenter.Scheduler.
func (l *Loop) Go(work func(ctx context.Context) func()) {
	l.begin()
	go func() {
		apply := work(l.ctx)
		posted := l.post(func() {
			defer l.end()
			if apply != nil {
				apply()
			}
		})
		if !posted {
			l.end()
		}
	}()
}

func (l *Loop) begin() {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

func (l *Loop) end() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending--
	if l.pending > 0 {
		return
	}
	for _, ch := range l.idle {
		close(ch)
	}
	l.idle = nil
}

// Settle waits until no work started with Go is outstanding, including work
// started by continuations.
func (l *Loop) Settle(ctx context.Context) error {
	l.mu.Lock()
	if l.pending == 0 {
		l.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	l.idle = append(l.idle, ch)
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopClosed
	}
}

// Close stops the loop and waits for it to exit. Outstanding network work is cancelled.
func (l *Loop) Close() {
	l.cancel()
	<-l.done
}
