// Package expiry arms a one-shot countdown to the payment deadline. The
// guard only proposes a cancellation; reconciliation decides whether it
// lands. It never cancels an order whose PAID signal is already persisted.
package expiry

import (
	"context"
	"sync"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

type Guard struct {
	number   domain.OrderNumber
	deadline time.Time
	engine   port.Service
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	fired  bool
	done   chan struct{}
}

// NewGuard builds a guard for one order. Orders on channels without a
// deadline semantic get a nil guard; callers treat nil as "never expires".
func NewGuard(order *domain.Order, engine port.Service, logger *zap.Logger) *Guard {
	if tx := order.LatestTransaction(); tx != nil && !tx.PaymentType.HasDeadline() {
		return nil
	}
	deadline := engine.PaymentDeadline(order)
	if deadline.IsZero() {
		return nil
	}
	return &Guard{
		number:   order.Number,
		deadline: deadline,
		engine:   engine,
		logger:   logger,
	}
}

// Arm starts the countdown. Arming twice is a no-op; a guard that already
// fired never fires again.
func (g *Guard) Arm(ctx context.Context) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil || g.fired {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})
	go g.run(ctx, g.done)
}

func (g *Guard) Stop() {
	if g == nil {
		return
	}
	g.mu.Lock()
	cancel := g.cancel
	g.cancel = nil
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (g *Guard) Done() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}

func (g *Guard) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer g.Stop()

	timer := time.NewTimer(time.Until(g.deadline))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		g.logger.Debug("Expiry guard cancelled", zap.String("order", string(g.number)))
	case <-timer.C:
		g.fire(ctx)
	}
}

// fire resolves the expiry race: one authoritative re-fetch before proposing
// cancellation. A PAID result is fed as a PAID observation instead, so the
// value-wins rule settles it.
func (g *Guard) fire(ctx context.Context) {
	g.mu.Lock()
	if g.fired {
		g.mu.Unlock()
		return
	}
	g.fired = true
	g.mu.Unlock()

	order, err := g.engine.GetOrder(ctx, g.number)
	if ctx.Err() != nil {
		// Stopped while the re-fetch was in flight; discard the result
		// whatever it was.
		return
	}
	if err != nil {
		// The re-fetch failed; propose expiry anyway. The conditional
		// update still refuses to cancel a paid order.
		g.logger.Warn("Expiry re-fetch failed",
			zap.String("order", string(g.number)), zap.Error(err))
	} else if order.PaymentStatus == domain.PaymentStatusPaid {
		g.logger.Debug("Expiry lost the race to a payment",
			zap.String("order", string(g.number)))
		_, _, err := g.engine.ApplyObservation(ctx, g.number, domain.Observation{
			Status: domain.PaymentStatusPaid,
			Source: domain.SourceExpiry,
		})
		if err != nil {
			g.logger.Warn("Expiry paid observation failed",
				zap.String("order", string(g.number)), zap.Error(err))
		}
		return
	}

	_, effect, err := g.engine.CancelExpired(ctx, g.number)
	if err != nil {
		g.logger.Warn("Expiry cancellation failed",
			zap.String("order", string(g.number)), zap.Error(err))
		return
	}
	g.logger.Debug("Expiry fired",
		zap.String("order", string(g.number)), zap.String("effect", string(effect)))
}
