package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storewave/payrecon/internal/adapter/client/gateway"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	Handler
	service port.Service
}

func NewWebhookHandler(service port.Service, logger *zap.Logger) (*WebhookHandler, error) {
	return &WebhookHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type paymentCallbackReq struct {
	EventID           string `json:"event_id"`
	OrderID           string `json:"order_id" binding:"required"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
}

// PaymentCallback receives the gateway's push notification. The payload's
// status is advisory input to reconciliation like any other observation; a
// stale or contradictory callback lands as a no-op.
func (wh *WebhookHandler) PaymentCallback(ctx *gin.Context) {
	var req paymentCallbackReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		wh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	obs := domain.Observation{
		Status: gateway.MapStatus(req.TransactionStatus),
		Source: domain.SourceWebhook,
	}
	if req.TransactionID != "" {
		id := req.TransactionID
		obs.TransactionID = &id
	}

	_, effect, err := wh.service.ApplyObservation(ctx, domain.OrderNumber(req.OrderID), obs)
	if err != nil {
		wh.handleError(ctx, err)
		return
	}

	wh.logger.Info("Payment callback processed",
		zap.String("event", req.EventID),
		zap.String("order", req.OrderID),
		zap.String("observed", req.TransactionStatus),
		zap.String("effect", string(effect)))

	wh.handleSuccess(ctx, gin.H{"event_id": req.EventID, "effect": string(effect)})
}
