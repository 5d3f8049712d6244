package present_test

import (
	"testing"
	"time"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/present"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// immediate fires every wait right away so the full sequence runs without
// real sleeps.
func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

// never blocks every wait until the sequencer is closed.
func never(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

func collect(t *testing.T, events <-chan present.Event, n int) []present.Event {
	t.Helper()
	out := make([]present.Event, 0, n)
	for i := 0; i < n; i++ {
		select {
		case e := <-events:
			out = append(out, e)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d events, got %d", n, len(out))
		}
	}
	return out
}

func TestSequencer_OrderedSignals(t *testing.T) {
	logger, _ := zap.NewProduction()
	s := present.NewSequencer(2*time.Second, 3*time.Second, logger,
		present.WithAfter(immediate))
	defer s.Close()

	number := domain.OrderNumber("ORD-SEQ-1")
	s.PaymentConfirmed(number)

	events := collect(t, s.Events(), 3)
	assert.Equal(t, present.Event{Order: number, Signal: present.SignalConfirmed}, events[0])
	assert.Equal(t, present.Event{Order: number, Signal: present.SignalShowFull}, events[1])
	assert.Equal(t, present.Event{Order: number, Signal: present.SignalComplete}, events[2])
}

func TestSequencer_ExactlyOncePerOrder(t *testing.T) {
	logger, _ := zap.NewProduction()
	s := present.NewSequencer(time.Second, time.Second, logger,
		present.WithAfter(immediate))
	defer s.Close()

	number := domain.OrderNumber("ORD-SEQ-2")
	s.PaymentConfirmed(number)
	s.PaymentConfirmed(number)
	s.PaymentConfirmed(number)

	collect(t, s.Events(), 3)

	select {
	case e := <-s.Events():
		t.Fatalf("unexpected extra event %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSequencer_IndependentOrders(t *testing.T) {
	logger, _ := zap.NewProduction()
	s := present.NewSequencer(time.Second, time.Second, logger,
		present.WithAfter(immediate))
	defer s.Close()

	s.PaymentConfirmed("ORD-SEQ-A")
	s.PaymentConfirmed("ORD-SEQ-B")

	events := collect(t, s.Events(), 6)

	perOrder := make(map[domain.OrderNumber][]present.Signal)
	for _, e := range events {
		perOrder[e.Order] = append(perOrder[e.Order], e.Signal)
	}
	expected := []present.Signal{present.SignalConfirmed, present.SignalShowFull, present.SignalComplete}
	assert.Equal(t, expected, perOrder["ORD-SEQ-A"])
	assert.Equal(t, expected, perOrder["ORD-SEQ-B"])
}

func TestSequencer_CloseStopsMidSequence(t *testing.T) {
	logger, _ := zap.NewProduction()
	s := present.NewSequencer(time.Second, time.Second, logger,
		present.WithAfter(never))

	number := domain.OrderNumber("ORD-SEQ-3")
	s.PaymentConfirmed(number)

	events := collect(t, s.Events(), 1)
	assert.Equal(t, present.SignalConfirmed, events[0].Signal)

	s.Close()
	s.Close() // repeated close is safe

	// Close drains the in-flight sequence and closes the stream, so a
	// ranging consumer terminates instead of blocking forever.
	select {
	case e, ok := <-s.Events():
		assert.False(t, ok, "expected closed stream, got %+v", e)
	case <-time.After(time.Second):
		t.Fatal("event stream was not closed")
	}

	// Late notifications after close are dropped.
	s.PaymentConfirmed("ORD-SEQ-LATE")
}
