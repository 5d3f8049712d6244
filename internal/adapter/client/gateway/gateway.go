package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/storewave/payrecon/internal/adapter/config"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

// Client talks to the external payment gateway's status API. The gateway is
// the ultimate source of truth for whether money was received; this adapter
// only translates its vocabulary, it never decides transitions.
type Client struct {
	logger    *zap.Logger
	host      string
	syncQueue chan domain.OrderNumber
}

func NewClient(cfg *config.Gateway, log *zap.Logger) (*Client, error) {
	return &Client{
		host:      cfg.HostString,
		logger:    log,
		syncQueue: make(chan domain.OrderNumber, 16),
	}, nil
}

type statusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	ExpiryTime        string `json:"expiry_time"`
}

type errGatewayRequest struct {
	error
	RetryAfter time.Duration
}

func (e *errGatewayRequest) Error() string {
	return fmt.Sprintf("Too Many Requests. Retry-After: %s", e.RetryAfter)
}

// MapStatus translates gateway vocabulary into the local payment statuses.
// Unrecognized values pass through uppercased; reconciliation treats them as
// a no-op and the caller logs them.
func MapStatus(raw string) domain.PaymentStatus {
	switch strings.ToLower(raw) {
	case "settlement", "capture", "paid", "success":
		return domain.PaymentStatusPaid
	case "pending", "authorize", "created":
		return domain.PaymentStatusPending
	case "deny", "cancel", "expire", "failure", "failed":
		return domain.PaymentStatusFailed
	case "refund", "partial_refund", "refunded":
		return domain.PaymentStatusRefunded
	}
	return domain.PaymentStatus(strings.ToUpper(raw))
}

func (c *Client) TransactionStatus(ctx context.Context, number domain.OrderNumber) (*port.GatewayStatus, error) {
	requestStr := "http://" + c.host + "/v2/" + string(number) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", requestStr, err)
	}

	c.logger.Debug("Fire request for transaction status",
		zap.String("order", string(number)))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			var retryAfter time.Duration
			sec, err := strconv.Atoi(resp.Header.Get("Retry-After"))
			if err != nil {
				retryAfter = 10
			} else {
				retryAfter = time.Duration(sec)
			}
			return nil, &errGatewayRequest{RetryAfter: retryAfter * time.Second}
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrDataNotFound
		}
		c.logger.Error("unexpected status for request",
			zap.String("order", string(number)), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("bad response %v for request %s", resp.StatusCode, requestStr)
	}

	var result statusResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error on response decode: %w", err)
	}

	status := &port.GatewayStatus{
		OrderNumber:   domain.OrderNumber(result.OrderID),
		Status:        MapStatus(result.TransactionStatus),
		TransactionID: result.TransactionID,
	}
	if result.ExpiryTime != "" {
		if t, err := time.Parse(time.RFC3339, result.ExpiryTime); err == nil {
			status.ExpiresAt = &t
		}
	}
	return status, nil
}

// ScheduleSync queues an order for a background sync against the gateway.
func (c *Client) ScheduleSync(number domain.OrderNumber) {
	c.logger.Debug("> put order in sync queue", zap.String("order", string(number)))
	c.syncQueue <- number
	c.logger.Debug("< put order in sync queue", zap.String("order", string(number)))
}

// ScheduleSyncService runs the background sync workers. Transient failures
// requeue the order after a short wait; a gateway Retry-After is honored
// before the next attempt.
func (c *Client) ScheduleSyncService(ctx context.Context, syncer port.PaymentSyncer, workers int) {
	for i := 0; i < workers; i++ {
		go func(queue chan domain.OrderNumber) {
			for {
				select {
				case number := <-queue:
					c.logger.Debug("Start background sync",
						zap.String("order", string(number)))

					_, effect, err := syncer.SyncPayment(ctx, number)
					if err != nil {
						wait := 3 * time.Second
						var reqErr *errGatewayRequest
						if errors.As(err, &reqErr) {
							wait = reqErr.RetryAfter
						}
						c.logger.Warn("Background sync failed, will retry",
							zap.String("order", string(number)),
							zap.Duration("wait", wait), zap.Error(err))
						go c.retrySync(ctx, number, wait)
						continue
					}

					c.logger.Debug("Finished background sync",
						zap.String("order", string(number)),
						zap.String("effect", string(effect)))
				case <-ctx.Done():
					c.logger.Debug("Finished sync worker")
					return
				}
			}
		}(c.syncQueue)
	}
}

func (c *Client) retrySync(ctx context.Context, number domain.OrderNumber, waitFor time.Duration) {
	r := time.NewTimer(waitFor)
	defer r.Stop()

	select {
	case <-r.C:
		c.logger.Debug("> put order in sync queue (retry)", zap.String("order", string(number)))
		c.syncQueue <- number
		c.logger.Debug("< put order in sync queue (retry)", zap.String("order", string(number)))
	case <-ctx.Done():
	}
}
