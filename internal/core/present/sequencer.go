// Package present emits the fixed two-phase UI acknowledgment after a
// payment lands: confirmed, then the full-screen confirmation after a grace
// interval, then complete after the progress run. The ordering and the
// exactly-once guarantee are a contract consumers synchronize on; rendering
// is not this package's business.
package present

import (
	"context"
	"sync"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"go.uber.org/zap"
)

type Signal string

const (
	SignalConfirmed Signal = "confirmed"
	SignalShowFull  Signal = "show_full_confirmation"
	SignalComplete  Signal = "complete"
)

type Event struct {
	Order  domain.OrderNumber
	Signal Signal
}

type Option func(*Sequencer)

// WithAfter replaces the wait primitive, letting tests drive the sequence
// without real sleeps.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Sequencer) { s.after = after }
}

type Sequencer struct {
	grace    time.Duration
	progress time.Duration
	logger   *zap.Logger
	after    func(time.Duration) <-chan time.Time

	ctx    context.Context
	cancel context.CancelFunc
	out    chan Event

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
	seen   map[domain.OrderNumber]bool
}

func NewSequencer(grace, progress time.Duration, logger *zap.Logger, opts ...Option) *Sequencer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sequencer{
		grace:    grace,
		progress: progress,
		logger:   logger,
		after:    time.After,
		ctx:      ctx,
		cancel:   cancel,
		out:      make(chan Event, 16),
		seen:     make(map[domain.OrderNumber]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events is the ordered signal stream. One successful reconciliation yields
// exactly confirmed, show_full_confirmation, complete for that order.
func (s *Sequencer) Events() <-chan Event {
	return s.out
}

// PaymentConfirmed implements port.PaymentNotifier. Repeat notifications for
// the same order are dropped, as is anything arriving after Close.
func (s *Sequencer) PaymentConfirmed(number domain.OrderNumber) {
	s.mu.Lock()
	if s.closed || s.seen[number] {
		s.mu.Unlock()
		return
	}
	s.seen[number] = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.run(number)
	}()
}

// Close aborts in-flight sequences and closes the event stream, so consumers
// ranging over Events terminate.
func (s *Sequencer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.out)
}

func (s *Sequencer) run(number domain.OrderNumber) {
	if !s.emit(number, SignalConfirmed) {
		return
	}
	if !s.wait(s.grace) {
		return
	}
	if !s.emit(number, SignalShowFull) {
		return
	}
	if !s.wait(s.progress) {
		return
	}
	s.emit(number, SignalComplete)
	s.logger.Debug("Presentation sequence complete", zap.String("order", string(number)))
}

func (s *Sequencer) emit(number domain.OrderNumber, sig Signal) bool {
	select {
	case s.out <- Event{Order: number, Signal: sig}:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Sequencer) wait(d time.Duration) bool {
	select {
	case <-s.after(d):
		return true
	case <-s.ctx.Done():
		return false
	}
}
