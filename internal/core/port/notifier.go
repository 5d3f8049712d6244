package port

import "github.com/storewave/payrecon/internal/core/domain"

// PaymentNotifier receives exactly one notification per successful PAID
// reconciliation. The presentation sequencer hangs off this port.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock
type PaymentNotifier interface {
	PaymentConfirmed(number domain.OrderNumber)
}
