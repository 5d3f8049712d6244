package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"github.com/storewave/payrecon/internal/core/recon"
	"go.uber.org/zap"
)

// Clock is injected so deadline math is testable.
type Clock func() time.Time

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.now = c }
}

// Service owns every payment transition. Pollers, the expiry guard, webhook
// and sync handlers all go through ApplyObservation; nothing else writes
// payment state.
type Service struct {
	repo     port.Repository
	gateway  port.GatewayClient
	notifier port.PaymentNotifier
	timeout  time.Duration
	logger   *zap.Logger
	now      Clock
}

func NewService(repo port.Repository, gateway port.GatewayClient,
	notifier port.PaymentNotifier, timeout time.Duration,
	logger *zap.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.Number == "" {
		return nil, domain.ErrOrderBadNumber
	}

	exOrder, err := s.repo.ReadOrder(ctx, order.Number)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exOrder != nil {
		return nil, domain.ErrConflictingData
	}

	order.CreatedAt = s.now()
	order.Status = domain.OrderStatusPending
	order.PaymentStatus = domain.PaymentStatusPending
	order.PaidAt = nil
	for _, t := range order.Transactions {
		t.OrderNumber = order.Number
		t.Status = domain.PaymentStatusPending
		t.CreatedAt = order.CreatedAt
	}

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, number)
}

// PaymentDeadline resolves the effective deadline: the gateway-declared
// expiresAt when present, otherwise createdAt plus the configured timeout.
// Channels without a deadline semantic return the zero time.
func (s *Service) PaymentDeadline(order *domain.Order) time.Time {
	tx := order.LatestTransaction()
	if tx != nil {
		if !tx.PaymentType.HasDeadline() {
			return time.Time{}
		}
		if tx.ExpiresAt != nil {
			return *tx.ExpiresAt
		}
	}
	return order.CreatedAt.Add(s.timeout)
}

// TimeRemaining returns seconds until the deadline, nil when the order is
// closed or its channel never expires.
func (s *Service) TimeRemaining(order *domain.Order, now time.Time) *int64 {
	if !order.PaymentOpen() {
		return nil
	}
	deadline := s.PaymentDeadline(order)
	if deadline.IsZero() {
		return nil
	}
	remaining := int64(deadline.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

func (s *Service) ApplyObservation(ctx context.Context, number domain.OrderNumber,
	obs domain.Observation) (*domain.Order, domain.SideEffect, error) {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, domain.SideEffectNone, err
	}

	state := recon.PaymentState{
		PaymentStatus: order.PaymentStatus,
		OrderStatus:   order.Status,
		ExpiresAt:     s.PaymentDeadline(order),
	}
	decision := recon.Reconcile(state, obs, s.now())
	if decision.Effect == domain.SideEffectNone {
		return order, domain.SideEffectNone, nil
	}

	var applied bool
	switch decision.Effect {
	case domain.SideEffectMarkPaid:
		applied, err = s.repo.MarkPaid(ctx, number, s.now(), obs.TransactionID)
	case domain.SideEffectMarkExpired:
		applied, err = s.repo.MarkExpired(ctx, number)
	case domain.SideEffectMarkFailed:
		applied, err = s.repo.MarkFailed(ctx, number)
	case domain.SideEffectMarkRefunded:
		applied, err = s.repo.MarkRefunded(ctx, number)
	}
	if err != nil {
		s.logger.Error("Apply side effect",
			zap.String("order", string(number)),
			zap.String("effect", string(decision.Effect)),
			zap.Error(err))
		return nil, domain.SideEffectNone, err
	}

	effect := decision.Effect
	if !applied {
		// Another writer won the conditional update; the stored state is
		// already at least as advanced as ours.
		effect = domain.SideEffectNone
	}

	if effect == domain.SideEffectMarkPaid && s.notifier != nil {
		s.notifier.PaymentConfirmed(number)
	}

	fresh, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, effect, err
	}
	s.logger.Debug("Observation reconciled",
		zap.String("order", string(number)),
		zap.String("source", string(obs.Source)),
		zap.String("observed", string(obs.Status)),
		zap.String("effect", string(effect)))
	return fresh, effect, nil
}

// SyncPayment pulls gateway truth and reconciles it. A gateway failure is
// returned without touching stored state; the poll loop remains the source
// of eventual truth.
func (s *Service) SyncPayment(ctx context.Context, number domain.OrderNumber) (*domain.Order, domain.SideEffect, error) {
	status, err := s.gateway.TransactionStatus(ctx, number)
	if err != nil {
		s.logger.Warn("Gateway status fetch failed",
			zap.String("order", string(number)), zap.Error(err))
		// Keep the client's error in the chain so callers can read a
		// declared backoff out of it.
		return nil, domain.SideEffectNone, fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
	}

	obs := domain.Observation{
		Status: status.Status,
		Source: domain.SourceSync,
	}
	if status.TransactionID != "" {
		id := status.TransactionID
		obs.TransactionID = &id
	}
	return s.ApplyObservation(ctx, number, obs)
}

// CancelExpired feeds one expiry observation. Reconciliation rejects it when
// the deadline has not passed or the order already left PENDING.
func (s *Service) CancelExpired(ctx context.Context, number domain.OrderNumber) (*domain.Order, domain.SideEffect, error) {
	return s.ApplyObservation(ctx, number, domain.Observation{
		Status: domain.PaymentStatusPending,
		Source: domain.SourceExpiry,
	})
}

var validOrderStatus = map[domain.OrderStatus]bool{
	domain.OrderStatusPending:    true,
	domain.OrderStatusProcessing: true,
	domain.OrderStatusShipped:    true,
	domain.OrderStatusDelivered:  true,
	domain.OrderStatusCancelled:  true,
	domain.OrderStatusRefunded:   true,
}

// AdminUpdateStatus moves the fulfillment axis. It is independent of the
// payment axis and deliberately unrestricted beyond value validation.
func (s *Service) AdminUpdateStatus(ctx context.Context, number domain.OrderNumber,
	status domain.OrderStatus) (*domain.Order, error) {
	if !validOrderStatus[status] {
		return nil, domain.ErrBadStatusValue
	}

	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}

	return s.repo.UpdateOrderStatus(ctx, number, status)
}

// AdminOverridePayment forces paymentStatus for manually-settled orders.
// Gateway-provider transactions are read-only here: they move only through
// sync or webhook reconciliation.
func (s *Service) AdminOverridePayment(ctx context.Context, number domain.OrderNumber,
	status domain.PaymentStatus) (*domain.Order, error) {
	switch status {
	case domain.PaymentStatusPaid, domain.PaymentStatusFailed, domain.PaymentStatusRefunded:
	default:
		return nil, domain.ErrBadStatusValue
	}

	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	if tx := order.LatestTransaction(); tx != nil && tx.Provider != domain.ProviderOffline {
		return nil, domain.ErrProviderReadOnly
	}
	if order.PaymentStatus == domain.PaymentStatusPaid && status != domain.PaymentStatusRefunded {
		return nil, domain.ErrPaymentFinal
	}

	obs := domain.Observation{Status: status, Source: domain.SourceSync}
	if status == domain.PaymentStatusRefunded {
		obs.Authorized = true
	}
	updated, _, err := s.ApplyObservation(ctx, number, obs)
	return updated, err
}
