package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/storewave/payrecon/internal/adapter/client/gateway"
	"github.com/storewave/payrecon/internal/adapter/config"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		raw string
		exp domain.PaymentStatus
	}{
		{"settlement", domain.PaymentStatusPaid},
		{"capture", domain.PaymentStatusPaid},
		{"SUCCESS", domain.PaymentStatusPaid},
		{"pending", domain.PaymentStatusPending},
		{"authorize", domain.PaymentStatusPending},
		{"deny", domain.PaymentStatusFailed},
		{"expire", domain.PaymentStatusFailed},
		{"cancel", domain.PaymentStatusFailed},
		{"refund", domain.PaymentStatusRefunded},
		{"partial_refund", domain.PaymentStatusRefunded},
		{"chargeback", domain.PaymentStatus("CHARGEBACK")},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			assert.Equal(t, test.exp, gateway.MapStatus(test.raw))
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*gateway.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := zap.NewProduction()
	c, err := gateway.NewClient(&config.Gateway{
		HostString: strings.TrimPrefix(srv.URL, "http://"),
	}, logger)
	assert.NoError(t, err)

	return c, srv
}

func TestClient_TransactionStatus(t *testing.T) {
	number := domain.OrderNumber("ORD-GW-1")

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/"+string(number)+"/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"order_id": "ORD-GW-1",
			"transaction_id": "mt-778899",
			"transaction_status": "settlement",
			"expiry_time": "2025-03-10T13:00:00Z"
		}`))
	})

	status, err := c.TransactionStatus(context.Background(), number)

	assert.NoError(t, err)
	assert.Equal(t, number, status.OrderNumber)
	assert.Equal(t, domain.PaymentStatusPaid, status.Status)
	assert.Equal(t, "mt-778899", status.TransactionID)
	if assert.NotNil(t, status.ExpiresAt) {
		assert.Equal(t, time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), status.ExpiresAt.UTC())
	}
}

func TestClient_TransactionStatusNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.TransactionStatus(context.Background(), "ORD-GW-404")

	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestClient_TransactionStatusRateLimited(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.TransactionStatus(context.Background(), "ORD-GW-429")

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Retry-After: 7s")
	}
}
