package port

import (
	"context"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error)
	// ListOpenOrders returns orders still waiting for payment: paymentStatus
	// PENDING and not cancelled.
	ListOpenOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, number domain.OrderNumber, status domain.OrderStatus) (*domain.Order, error)

	// Side-effect writes. Each is a single conditional update: it applies
	// only if the stored state still allows the transition, so concurrent
	// writers serialize without locks. applied == false means another
	// writer already moved the order and nothing was changed.
	MarkPaid(ctx context.Context, number domain.OrderNumber, paidAt time.Time, transactionID *string) (applied bool, err error)
	MarkExpired(ctx context.Context, number domain.OrderNumber) (applied bool, err error)
	MarkFailed(ctx context.Context, number domain.OrderNumber) (applied bool, err error)
	MarkRefunded(ctx context.Context, number domain.OrderNumber) (applied bool, err error)
}
