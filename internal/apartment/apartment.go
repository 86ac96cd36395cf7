// Package apartment runs functions on a single OS thread, which is what
// single-threaded COM requires of every call made against an object.
package apartment

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// ErrClosed is returned by Do once the apartment has been closed.
var ErrClosed = errors.New("apartment: closed")

type call struct {
	fn   func() error
	done chan error
}

// Apartment owns one locked OS thread and executes calls on it serially.
type Apartment struct {
	calls   chan call
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
	logger  hclog.Logger
}

// Options configure the thread an Apartment runs on.
type Options struct {
	// Init runs on the thread before any call, for example to initialise COM.
	Init func() error
	// Uninit runs on the thread after the last call.
	Uninit func()
	Logger hclog.Logger
}

// Start locks a new goroutine to its thread and runs Init on it.
func Start(opts Options) (*Apartment, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	a := &Apartment{
		calls:   make(chan call),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger,
	}

	ready := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(a.stopped)

		if opts.Init != nil {
			if err := opts.Init(); err != nil {
				ready <- err
				return
			}
		}
		ready <- nil
		a.loop()
		if opts.Uninit != nil {
			opts.Uninit()
		}
		a.logger.Debug("apartment thread stopped")
	}()

	if err := <-ready; err != nil {
		return nil, fmt.Errorf("failed to initialize apartment: %w", err)
	}
	a.logger.Debug("apartment thread started")
	return a, nil
}

func (a *Apartment) loop() {
	for {
		select {
		case c := <-a.calls:
			c.done <- a.run(c.fn)
		case <-a.quit:
			return
		}
	}
}

func (a *Apartment) run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("call panicked", "panic", r)
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return fn()
}

// Do runs fn on the apartment thread and waits for it. If ctx ends before
// fn has started, fn is not run. If ctx ends while fn is running, Do
// returns ctx.Err() and fn completes in the background; native calls
// cannot be interrupted.
func (a *Apartment) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := call{fn: fn, done: make(chan error, 1)}
	select {
	case <-a.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case a.calls <- c:
	}
	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close runs final on the apartment thread, stops accepting calls and
// waits for the thread to exit.
func (a *Apartment) Close(final func() error) error {
	var err error
	a.once.Do(func() {
		if final != nil {
			err = a.Do(context.Background(), final)
		}
		close(a.quit)
		<-a.stopped
	})
	return err
}
