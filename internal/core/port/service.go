package port

import (
	"context"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error)

	// ApplyObservation runs one observation through reconciliation and
	// persists the resulting side effect. The returned effect is the one
	// actually applied: NONE when reconciliation declined it or a
	// concurrent writer got there first.
	ApplyObservation(ctx context.Context, number domain.OrderNumber, obs domain.Observation) (*domain.Order, domain.SideEffect, error)
	SyncPayment(ctx context.Context, number domain.OrderNumber) (*domain.Order, domain.SideEffect, error)
	CancelExpired(ctx context.Context, number domain.OrderNumber) (*domain.Order, domain.SideEffect, error)

	AdminUpdateStatus(ctx context.Context, number domain.OrderNumber, status domain.OrderStatus) (*domain.Order, error)
	AdminOverridePayment(ctx context.Context, number domain.OrderNumber, status domain.PaymentStatus) (*domain.Order, error)

	PaymentDeadline(order *domain.Order) time.Time
	TimeRemaining(order *domain.Order, now time.Time) *int64
}
