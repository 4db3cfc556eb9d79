// Package signal turns SIGINT/SIGTERM into context cancellation for relay.
//
// Cancelling the run context kills the assistant process started with
// exec.CommandContext, so Ctrl+C never leaves an orphaned child behind.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context when an interrupt or termination signal arrives.
type Handler struct {
	ctx         context.Context //nolint:containedctx // the handler owns this context's lifecycle
	cancel      context.CancelFunc
	sigChan     chan os.Signal
	interrupted chan struct{}
	done        chan struct{}
	received    os.Signal
	mu          sync.Mutex
	once        sync.Once
	stopOnce    sync.Once
}

// NewHandler creates a Handler derived from parent and starts listening.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := run(h.Context())
//	if code, ok := h.ExitCode(); ok {
//	    os.Exit(code)
//	}
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		sigChan:     make(chan os.Signal, 1),
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context that is cancelled on interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that is closed once a signal has been handled.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// ExitCode returns the conventional shell status for the received signal
// (128 + signal number, so 130 for SIGINT). ok is false if no signal arrived.
func (h *Handler) ExitCode() (code int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.received == nil {
		return 0, false
	}
	if sig, isSyscall := h.received.(syscall.Signal); isSyscall {
		return 128 + int(sig), true
	}
	return 1, true
}

// Stop stops listening for signals and releases the context.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

// handleSignal records sig and cancels the context. Only the first signal counts.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel()
		close(h.interrupted)
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
