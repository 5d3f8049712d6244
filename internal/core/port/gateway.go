package port

import (
	"context"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
)

// GatewayStatus is the gateway's authoritative answer for one order,
// already mapped to local payment vocabulary.
type GatewayStatus struct {
	OrderNumber   domain.OrderNumber
	Status        domain.PaymentStatus
	TransactionID string
	ExpiresAt     *time.Time
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type GatewayClient interface {
	TransactionStatus(ctx context.Context, number domain.OrderNumber) (*GatewayStatus, error)
}

// SyncScheduler queues an order for a background sync against the gateway.
type SyncScheduler interface {
	ScheduleSync(number domain.OrderNumber)
}

// PaymentSyncer is the slice of the engine the background sync workers use.
type PaymentSyncer interface {
	SyncPayment(ctx context.Context, number domain.OrderNumber) (*domain.Order, domain.SideEffect, error)
}
