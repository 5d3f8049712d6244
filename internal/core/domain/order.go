package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderNumber string

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Order struct {
	Number        OrderNumber
	Status        OrderStatus
	PaymentStatus PaymentStatus
	Total         decimal.Decimal
	Currency      string
	CreatedAt     time.Time
	PaidAt        *time.Time
	Transactions  []*PaymentTransaction
}

// LatestTransaction returns the most recent payment snapshot, or nil for an
// order that never reached the gateway.
func (o *Order) LatestTransaction() *PaymentTransaction {
	if len(o.Transactions) == 0 {
		return nil
	}
	latest := o.Transactions[0]
	for _, t := range o.Transactions[1:] {
		if t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	return latest
}

// PaymentOpen reports whether the order is still waiting for a payment
// decision. Cancelled orders are closed even though paymentStatus stays
// PENDING.
func (o *Order) PaymentOpen() bool {
	return o.PaymentStatus == PaymentStatusPending && o.Status != OrderStatusCancelled
}
