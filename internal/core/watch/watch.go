// Package watch ties a poll loop and an expiry guard to each open order and
// tears both down when either finishes or the session closes.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/expiry"
	"github.com/storewave/payrecon/internal/core/poll"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

type Supervisor struct {
	baseCtx  context.Context
	engine   port.Service
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	watchers map[domain.OrderNumber]*watcher
}

type watcher struct {
	loop   *poll.Loop
	guard  *expiry.Guard
	cancel context.CancelFunc
}

// NewSupervisor binds all watchers to ctx: when it ends, every loop and
// guard is cancelled.
func NewSupervisor(ctx context.Context, engine port.Service,
	pollInterval time.Duration, logger *zap.Logger) *Supervisor {
	return &Supervisor{
		baseCtx:  ctx,
		engine:   engine,
		interval: pollInterval,
		logger:   logger,
		watchers: make(map[domain.OrderNumber]*watcher),
	}
}

// Watch starts reconciliation tasks for one order. Orders already watched,
// already closed, or settled manually (COD / OFFLINE provider) get nothing.
func (s *Supervisor) Watch(order *domain.Order) {
	if !order.PaymentOpen() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchers[order.Number]; ok {
		return
	}

	wctx, cancel := context.WithCancel(s.baseCtx)
	w := &watcher{cancel: cancel}

	manual := false
	if tx := order.LatestTransaction(); tx != nil {
		manual = tx.Provider == domain.ProviderOffline || tx.PaymentType == domain.PaymentTypeCOD
	}
	if !manual {
		w.loop = poll.NewLoop(order.Number, s.engine, s.interval,
			s.logger.Named("Poll"))
		w.loop.Start(wctx)
	}

	w.guard = expiry.NewGuard(order, s.engine, s.logger.Named("Expiry"))
	w.guard.Arm(wctx)

	if w.loop == nil && w.guard == nil {
		cancel()
		return
	}
	s.watchers[order.Number] = w

	go s.reap(wctx, order.Number, w)
}

// reap waits for the first of: loop finished, guard finished, context gone;
// then drops the whole watcher.
func (s *Supervisor) reap(ctx context.Context, number domain.OrderNumber, w *watcher) {
	var loopDone, guardDone <-chan struct{}
	if w.loop != nil {
		loopDone = w.loop.Done()
	}
	if w.guard != nil {
		guardDone = w.guard.Done()
	}

	select {
	case <-loopDone:
	case <-guardDone:
	case <-ctx.Done():
	}
	s.Cancel(number)
}

// Cancel stops both tasks for an order. Safe to call for unknown orders and
// safe to call repeatedly.
func (s *Supervisor) Cancel(number domain.OrderNumber) {
	s.mu.Lock()
	w, ok := s.watchers[number]
	if ok {
		delete(s.watchers, number)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	w.cancel()
	if w.loop != nil {
		w.loop.Stop()
	}
	w.guard.Stop()
	s.logger.Debug("Watcher stopped", zap.String("order", string(number)))
}

func (s *Supervisor) Close() {
	s.mu.Lock()
	numbers := make([]domain.OrderNumber, 0, len(s.watchers))
	for n := range s.watchers {
		numbers = append(numbers, n)
	}
	s.mu.Unlock()

	for _, n := range numbers {
		s.Cancel(n)
	}
}
