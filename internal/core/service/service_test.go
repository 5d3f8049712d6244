package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"github.com/storewave/payrecon/internal/core/port/mock"
	"github.com/storewave/payrecon/internal/core/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, mockCtrl *gomock.Controller, prepare prepareMocks) (*service.Service,
	*mock.MockRepository, *mock.MockGatewayClient, *mock.MockPaymentNotifier) {
	t.Helper()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	gw := mock.NewMockGatewayClient(mockCtrl)
	notifier := mock.NewMockPaymentNotifier(mockCtrl)
	if prepare != nil {
		prepare(repo, gw, notifier)
	}

	s, err := service.NewService(repo, gw, notifier, 24*time.Hour, logger,
		service.WithClock(func() time.Time { return testNow }))
	assert.NoError(t, err)

	return s, repo, gw, notifier
}

func pendingOrder(number domain.OrderNumber, txs ...*domain.PaymentTransaction) *domain.Order {
	total, _ := decimal.New(150000, 0)
	return &domain.Order{
		Number:        number,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Total:         total,
		Currency:      "IDR",
		CreatedAt:     testNow.Add(-time.Hour),
		Transactions:  txs,
	}
}

func qrisTransaction(number domain.OrderNumber, expiresAt time.Time) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		OrderNumber: number,
		Provider:    "MIDTRANS",
		PaymentType: domain.PaymentTypeQRIS,
		Status:      domain.PaymentStatusPending,
		ExpiresAt:   &expiresAt,
		CreatedAt:   testNow.Add(-time.Hour),
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	type createOrderTest struct {
		name     string
		order    *domain.Order
		mock     prepareMocks
		expError error
	}

	number := domain.OrderNumber("ORD-1001")

	tests := []createOrderTest{
		{
			name:  "Create good",
			order: pendingOrder(number),
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.OrderStatusPending, o.Status)
						assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
						assert.Equal(t, testNow, o.CreatedAt)
						return o, nil
					})
			},
			expError: nil,
		},
		{
			name:  "Create already exists",
			order: pendingOrder(number),
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
			},
			expError: domain.ErrConflictingData,
		},
		{
			name:     "Create empty number",
			order:    &domain.Order{},
			mock:     nil,
			expError: domain.ErrOrderBadNumber,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			result, err := s.CreateOrder(context.Background(), test.order)

			assert.ErrorIs(t, err, test.expError)
			if test.expError == nil {
				assert.NotNil(t, result)
			}
		})
	}
}

func TestService_ApplyObservation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-2002")

	type applyTest struct {
		name      string
		obs       domain.Observation
		mock      prepareMocks
		expEffect domain.SideEffect
	}

	paidOrder := pendingOrder(number)
	paidOrder.PaymentStatus = domain.PaymentStatusPaid
	paidAt := testNow.Add(-30 * time.Minute)
	paidOrder.PaidAt = &paidAt

	tests := []applyTest{
		{
			name: "Paid webhook applies and notifies",
			obs:  domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourceWebhook},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
				repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, gomock.Nil()).Return(true, nil)
				notifier.EXPECT().PaymentConfirmed(number)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
			},
			expEffect: domain.SideEffectMarkPaid,
		},
		{
			name: "Paid race lost reports no effect",
			obs:  domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourcePoll},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
				repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, gomock.Nil()).Return(false, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
			},
			expEffect: domain.SideEffectNone,
		},
		{
			name: "Paid duplicate is a no-op",
			obs:  domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourceWebhook},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
			},
			expEffect: domain.SideEffectNone,
		},
		{
			name: "Expiry past deadline cancels",
			obs:  domain.Observation{Status: domain.PaymentStatusPending, Source: domain.SourceExpiry},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, qrisTransaction(number, testNow.Add(-time.Minute)))
				cancelled := pendingOrder(number)
				cancelled.Status = domain.OrderStatusCancelled
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
				repo.EXPECT().MarkExpired(gomock.Any(), number).Return(true, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(cancelled, nil)
			},
			expEffect: domain.SideEffectMarkExpired,
		},
		{
			name: "Expiry before deadline is rejected",
			obs:  domain.Observation{Status: domain.PaymentStatusPending, Source: domain.SourceExpiry},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, qrisTransaction(number, testNow.Add(10*time.Minute)))
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
			},
			expEffect: domain.SideEffectNone,
		},
		{
			name: "Paid observation beats a passed deadline",
			obs:  domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourcePoll},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, qrisTransaction(number, testNow.Add(-time.Minute)))
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
				repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, gomock.Nil()).Return(true, nil)
				notifier.EXPECT().PaymentConfirmed(number)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
			},
			expEffect: domain.SideEffectMarkPaid,
		},
		{
			name: "Unauthorized refund never moves a paid order",
			obs:  domain.Observation{Status: domain.PaymentStatusRefunded, Source: domain.SourceWebhook},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
			},
			expEffect: domain.SideEffectNone,
		},
		{
			name: "Authorized refund applies",
			obs:  domain.Observation{Status: domain.PaymentStatusRefunded, Source: domain.SourceSync, Authorized: true},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				refunded := pendingOrder(number)
				refunded.PaymentStatus = domain.PaymentStatusRefunded
				refunded.Status = domain.OrderStatusRefunded
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil)
				repo.EXPECT().MarkRefunded(gomock.Any(), number).Return(true, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(refunded, nil)
			},
			expEffect: domain.SideEffectMarkRefunded,
		},
		{
			name: "Failed observation marks failed",
			obs:  domain.Observation{Status: domain.PaymentStatusFailed, Source: domain.SourceWebhook},
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				failed := pendingOrder(number)
				failed.PaymentStatus = domain.PaymentStatusFailed
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
				repo.EXPECT().MarkFailed(gomock.Any(), number).Return(true, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(failed, nil)
			},
			expEffect: domain.SideEffectMarkFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			order, effect, err := s.ApplyObservation(context.Background(), number, test.obs)

			assert.NoError(t, err)
			assert.Equal(t, test.expEffect, effect)
			assert.NotNil(t, order)
		})
	}
}

func TestService_ApplyObservation_Idempotent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-3003")

	paidOrder := pendingOrder(number)
	paidOrder.PaymentStatus = domain.PaymentStatusPaid
	paidAt := testNow
	paidOrder.PaidAt = &paidAt

	s, repo, _, notifier := newTestService(t, mockCtrl, nil)

	repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
	repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, gomock.Nil()).Return(true, nil)
	notifier.EXPECT().PaymentConfirmed(number)
	// Every subsequent read sees the settled order; no more writes happen.
	repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paidOrder, nil).Times(5)

	obs := domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourceWebhook}

	_, effect, err := s.ApplyObservation(context.Background(), number, obs)
	assert.NoError(t, err)
	assert.Equal(t, domain.SideEffectMarkPaid, effect)

	for i := 0; i < 4; i++ {
		order, effect, err := s.ApplyObservation(context.Background(), number, obs)
		assert.NoError(t, err)
		assert.Equal(t, domain.SideEffectNone, effect)
		assert.Equal(t, &paidAt, order.PaidAt)
	}
}

func TestService_SyncPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-4004")
	txID := "mt-55001"

	type syncTest struct {
		name      string
		mock      prepareMocks
		expEffect domain.SideEffect
		expError  error
	}

	tests := []syncTest{
		{
			name: "Gateway settlement marks paid",
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				gw.EXPECT().TransactionStatus(gomock.Any(), number).Return(&port.GatewayStatus{
					OrderNumber:   number,
					Status:        domain.PaymentStatusPaid,
					TransactionID: txID,
				}, nil)
				paid := pendingOrder(number)
				paid.PaymentStatus = domain.PaymentStatusPaid
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
				repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, &txID).Return(true, nil)
				notifier.EXPECT().PaymentConfirmed(number)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paid, nil)
			},
			expEffect: domain.SideEffectMarkPaid,
			expError:  nil,
		},
		{
			name: "Gateway failure leaves stored state untouched",
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				gw.EXPECT().TransactionStatus(gomock.Any(), number).
					Return(nil, errors.New("connection refused"))
			},
			expEffect: domain.SideEffectNone,
			expError:  domain.ErrGatewayUnavailable,
		},
		{
			name: "Gateway pending is a no-op",
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				gw.EXPECT().TransactionStatus(gomock.Any(), number).Return(&port.GatewayStatus{
					OrderNumber:   number,
					Status:        domain.PaymentStatusPending,
					TransactionID: txID,
				}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
			},
			expEffect: domain.SideEffectNone,
			expError:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			_, effect, err := s.SyncPayment(context.Background(), number)

			assert.ErrorIs(t, err, test.expError)
			assert.Equal(t, test.expEffect, effect)
		})
	}
}

func TestService_AdminOverridePayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-5005")

	offlineTx := &domain.PaymentTransaction{
		OrderNumber: number,
		Provider:    domain.ProviderOffline,
		PaymentType: domain.PaymentTypeCOD,
		Status:      domain.PaymentStatusPending,
		CreatedAt:   testNow.Add(-time.Hour),
	}

	type overrideTest struct {
		name     string
		status   domain.PaymentStatus
		mock     prepareMocks
		expError error
	}

	tests := []overrideTest{
		{
			name:   "Offline order marked paid",
			status: domain.PaymentStatusPaid,
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, offlineTx)
				paid := pendingOrder(number, offlineTx)
				paid.PaymentStatus = domain.PaymentStatusPaid
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
				repo.EXPECT().MarkPaid(gomock.Any(), number, testNow, gomock.Nil()).Return(true, nil)
				notifier.EXPECT().PaymentConfirmed(number)
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(paid, nil)
			},
			expError: nil,
		},
		{
			name:   "Gateway provider is read-only",
			status: domain.PaymentStatusPaid,
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, qrisTransaction(number, testNow.Add(time.Hour)))
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
			},
			expError: domain.ErrProviderReadOnly,
		},
		{
			name:   "Paid order only moves to refunded",
			status: domain.PaymentStatusFailed,
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				order := pendingOrder(number, offlineTx)
				order.PaymentStatus = domain.PaymentStatusPaid
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(order, nil)
			},
			expError: domain.ErrPaymentFinal,
		},
		{
			name:     "Pending is not an override target",
			status:   domain.PaymentStatusPending,
			mock:     nil,
			expError: domain.ErrBadStatusValue,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			_, err := s.AdminOverridePayment(context.Background(), number, test.status)

			assert.ErrorIs(t, err, test.expError)
		})
	}
}

func TestService_AdminUpdateStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-6006")

	type updateTest struct {
		name     string
		status   domain.OrderStatus
		mock     prepareMocks
		expError error
	}

	tests := []updateTest{
		{
			name:   "Move to processing",
			status: domain.OrderStatusProcessing,
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				updated := pendingOrder(number)
				updated.Status = domain.OrderStatusProcessing
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), number, domain.OrderStatusProcessing).
					Return(updated, nil)
			},
			expError: nil,
		},
		{
			name:   "Same status is a no-op",
			status: domain.OrderStatusPending,
			mock: func(repo *mock.MockRepository, gw *mock.MockGatewayClient, notifier *mock.MockPaymentNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), number).Return(pendingOrder(number), nil)
			},
			expError: nil,
		},
		{
			name:     "Unknown status rejected",
			status:   domain.OrderStatus("TELEPORTED"),
			mock:     nil,
			expError: domain.ErrBadStatusValue,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			_, err := s.AdminUpdateStatus(context.Background(), number, test.status)

			assert.ErrorIs(t, err, test.expError)
		})
	}
}

func TestService_TimeRemaining(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	number := domain.OrderNumber("ORD-7007")
	s, _, _, _ := newTestService(t, mockCtrl, nil)

	t.Run("Open qris order counts down", func(t *testing.T) {
		order := pendingOrder(number, qrisTransaction(number, testNow.Add(90*time.Second)))
		remaining := s.TimeRemaining(order, testNow)
		if assert.NotNil(t, remaining) {
			assert.Equal(t, int64(90), *remaining)
		}
	})

	t.Run("Past deadline clamps to zero", func(t *testing.T) {
		order := pendingOrder(number, qrisTransaction(number, testNow.Add(-time.Minute)))
		remaining := s.TimeRemaining(order, testNow)
		if assert.NotNil(t, remaining) {
			assert.Equal(t, int64(0), *remaining)
		}
	})

	t.Run("COD never expires", func(t *testing.T) {
		cod := &domain.PaymentTransaction{
			OrderNumber: number,
			Provider:    domain.ProviderOffline,
			PaymentType: domain.PaymentTypeCOD,
			Status:      domain.PaymentStatusPending,
			CreatedAt:   testNow,
		}
		order := pendingOrder(number, cod)
		assert.Nil(t, s.TimeRemaining(order, testNow))
	})

	t.Run("Closed order has no deadline", func(t *testing.T) {
		order := pendingOrder(number, qrisTransaction(number, testNow.Add(time.Hour)))
		order.Status = domain.OrderStatusCancelled
		assert.Nil(t, s.TimeRemaining(order, testNow))
	})

	t.Run("No transaction falls back to created plus timeout", func(t *testing.T) {
		order := pendingOrder(number)
		remaining := s.TimeRemaining(order, testNow)
		if assert.NotNil(t, remaining) {
			assert.Equal(t, int64((23 * time.Hour).Seconds()), *remaining)
		}
	})
}
