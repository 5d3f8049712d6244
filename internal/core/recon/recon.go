// Package recon holds the pure reconciliation function. It is the single
// authority for payment transitions: pollers, the sync endpoint, webhook
// handlers and the expiry guard all feed observations here and persist only
// what the returned side effect tells them to.
package recon

import (
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
)

// PaymentState is the slice of an order the core reasons about.
type PaymentState struct {
	PaymentStatus domain.PaymentStatus
	OrderStatus   domain.OrderStatus
	// ExpiresAt is the effective payment deadline. Zero means the channel
	// has no deadline and the order never expires through this path.
	ExpiresAt time.Time
}

// Decision is what the caller must persist. Effect NONE means the state is
// returned unchanged and nothing is written.
type Decision struct {
	Next   PaymentState
	Effect domain.SideEffect
}

// Reconcile computes the next payment state for one observation. It is pure:
// no I/O, no clock reads, never an error. Unknown observed values fall
// through to a no-op; the caller logs them.
//
// Rule order matters only for readability. PAID wins by value, not by
// arrival: an expiry observation racing a PAID one loses even when it is
// processed first, because the PAID branch is checked before the deadline.
func Reconcile(current PaymentState, obs domain.Observation, now time.Time) Decision {
	// PAID is a sink for ordinary reconciliation. Only an explicit
	// authorized refund leaves it.
	if current.PaymentStatus == domain.PaymentStatusPaid {
		if obs.Status == domain.PaymentStatusRefunded && obs.Authorized {
			next := current
			next.PaymentStatus = domain.PaymentStatusRefunded
			next.OrderStatus = domain.OrderStatusRefunded
			return Decision{Next: next, Effect: domain.SideEffectMarkRefunded}
		}
		return Decision{Next: current, Effect: domain.SideEffectNone}
	}

	if current.PaymentStatus == domain.PaymentStatusRefunded {
		return Decision{Next: current, Effect: domain.SideEffectNone}
	}

	if obs.Status == domain.PaymentStatusPaid {
		next := current
		next.PaymentStatus = domain.PaymentStatusPaid
		return Decision{Next: next, Effect: domain.SideEffectMarkPaid}
	}

	// A cancelled order is closed: nothing below can move it, and a second
	// expiry observation must not cancel twice.
	if current.OrderStatus == domain.OrderStatusCancelled {
		return Decision{Next: current, Effect: domain.SideEffectNone}
	}

	if obs.Source == domain.SourceExpiry {
		if current.PaymentStatus == domain.PaymentStatusPending &&
			!current.ExpiresAt.IsZero() && !now.Before(current.ExpiresAt) {
			next := current
			next.OrderStatus = domain.OrderStatusCancelled
			return Decision{Next: next, Effect: domain.SideEffectMarkExpired}
		}
		return Decision{Next: current, Effect: domain.SideEffectNone}
	}

	if obs.Status == domain.PaymentStatusFailed {
		if current.PaymentStatus == domain.PaymentStatusFailed {
			return Decision{Next: current, Effect: domain.SideEffectNone}
		}
		next := current
		next.PaymentStatus = domain.PaymentStatusFailed
		return Decision{Next: next, Effect: domain.SideEffectMarkFailed}
	}

	return Decision{Next: current, Effect: domain.SideEffectNone}
}
