package poll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/poll"
	"github.com/storewave/payrecon/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("poll loop did not finish in time")
	}
}

func openOrder(number domain.OrderNumber, snapshot domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		Number:        number,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     time.Now(),
		Transactions: []*domain.PaymentTransaction{{
			OrderNumber: number,
			Provider:    "MIDTRANS",
			PaymentType: domain.PaymentTypeQRIS,
			Status:      snapshot,
			CreatedAt:   time.Now(),
		}},
	}
}

func TestLoop_TerminatesOnPaid(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	number := domain.OrderNumber("ORD-POLL-1")

	order := openOrder(number, domain.PaymentStatusPaid)
	paid := openOrder(number, domain.PaymentStatusPaid)
	paid.PaymentStatus = domain.PaymentStatusPaid

	engine := mock.NewMockService(mockCtrl)
	engine.EXPECT().GetOrder(gomock.Any(), number).Return(order, nil)
	engine.EXPECT().ApplyObservation(gomock.Any(), number,
		domain.Observation{Status: domain.PaymentStatusPaid, Source: domain.SourcePoll}).
		Return(paid, domain.SideEffectMarkPaid, nil)
	// One forced sync persists gateway truth right after the paid decision.
	engine.EXPECT().SyncPayment(gomock.Any(), number).
		Return(paid, domain.SideEffectNone, nil)

	l := poll.NewLoop(number, engine, 10*time.Millisecond, logger)
	l.Start(context.Background())

	waitDone(t, l.Done())
}

func TestLoop_TerminatesWhenPaymentClosed(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	number := domain.OrderNumber("ORD-POLL-2")

	cancelled := openOrder(number, domain.PaymentStatusPending)
	cancelled.Status = domain.OrderStatusCancelled

	engine := mock.NewMockService(mockCtrl)
	engine.EXPECT().GetOrder(gomock.Any(), number).Return(cancelled, nil)
	engine.EXPECT().ApplyObservation(gomock.Any(), number, gomock.Any()).
		Return(cancelled, domain.SideEffectNone, nil)

	l := poll.NewLoop(number, engine, 10*time.Millisecond, logger)
	l.Start(context.Background())

	waitDone(t, l.Done())
}

func TestLoop_TransientErrorKeepsPolling(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	number := domain.OrderNumber("ORD-POLL-3")

	order := openOrder(number, domain.PaymentStatusPaid)
	paid := openOrder(number, domain.PaymentStatusPaid)
	paid.PaymentStatus = domain.PaymentStatusPaid

	engine := mock.NewMockService(mockCtrl)
	gomock.InOrder(
		engine.EXPECT().GetOrder(gomock.Any(), number).
			Return(nil, errors.New("db gone")).Times(2),
		engine.EXPECT().GetOrder(gomock.Any(), number).Return(order, nil),
	)
	engine.EXPECT().ApplyObservation(gomock.Any(), number, gomock.Any()).
		Return(paid, domain.SideEffectMarkPaid, nil)
	engine.EXPECT().SyncPayment(gomock.Any(), number).
		Return(paid, domain.SideEffectNone, nil)

	l := poll.NewLoop(number, engine, 10*time.Millisecond, logger)
	l.Start(context.Background())

	waitDone(t, l.Done())
}

func TestLoop_StartStopSafety(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	number := domain.OrderNumber("ORD-POLL-4")

	order := openOrder(number, domain.PaymentStatusPending)

	engine := mock.NewMockService(mockCtrl)
	engine.EXPECT().GetOrder(gomock.Any(), number).Return(order, nil).AnyTimes()
	engine.EXPECT().ApplyObservation(gomock.Any(), number, gomock.Any()).
		Return(order, domain.SideEffectNone, nil).AnyTimes()

	l := poll.NewLoop(number, engine, 5*time.Millisecond, logger)
	l.Start(context.Background())
	done := l.Done()
	l.Start(context.Background()) // second start is a no-op
	assert.Equal(t, done, l.Done())

	time.Sleep(20 * time.Millisecond)
	l.Stop()
	l.Stop() // repeated stop is safe

	waitDone(t, done)
}
