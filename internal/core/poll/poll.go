// Package poll implements the repeating status check for one open order as
// an explicit task object with a start/stop lifecycle. Loop state is owned
// by whoever starts it; there are no package-level flags.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

type Loop struct {
	number   domain.OrderNumber
	engine   port.Service
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop(number domain.OrderNumber, engine port.Service,
	interval time.Duration, logger *zap.Logger) *Loop {
	return &Loop{
		number:   number,
		engine:   engine,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the loop. Starting an already-running loop is a no-op, so
// repeated start/stop cycles never leak tickers.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

// Stop cancels the loop. An in-flight fetch is allowed to finish; its result
// is discarded because the tick re-checks the context before acting.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Done is closed when the loop goroutine exits, either by Stop or by
// reaching a terminal payment state.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer l.Stop()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Poll loop cancelled", zap.String("order", string(l.number)))
			return
		case <-ticker.C:
			if l.tick(ctx) {
				return
			}
		}
	}
}

// tick performs one fetch-and-reconcile. It returns true when the loop must
// terminate. Transient fetch errors never stop the loop.
func (l *Loop) tick(ctx context.Context) bool {
	order, err := l.engine.GetOrder(ctx, l.number)
	if err != nil {
		l.logger.Warn("Poll fetch failed",
			zap.String("order", string(l.number)), zap.Error(err))
		return false
	}
	if ctx.Err() != nil {
		// Cancelled while the fetch was in flight; discard the result.
		return true
	}

	// The transaction snapshot may lag or lead the order's authoritative
	// status; it is what the poll observes.
	observed := order.PaymentStatus
	if tx := order.LatestTransaction(); tx != nil {
		observed = tx.Status
	}

	fresh, effect, err := l.engine.ApplyObservation(ctx, l.number, domain.Observation{
		Status: observed,
		Source: domain.SourcePoll,
	})
	if err != nil {
		l.logger.Warn("Poll reconcile failed",
			zap.String("order", string(l.number)), zap.Error(err))
		return false
	}

	if effect == domain.SideEffectMarkPaid {
		// Force-persist gateway truth before trusting the observed state.
		if _, _, err := l.engine.SyncPayment(ctx, l.number); err != nil {
			l.logger.Warn("Post-paid sync failed",
				zap.String("order", string(l.number)), zap.Error(err))
		}
	}

	switch effect {
	case domain.SideEffectMarkPaid, domain.SideEffectMarkExpired, domain.SideEffectMarkFailed:
		l.logger.Debug("Poll loop reached terminal state",
			zap.String("order", string(l.number)), zap.String("effect", string(effect)))
		return true
	}

	return !fresh.PaymentOpen()
}
