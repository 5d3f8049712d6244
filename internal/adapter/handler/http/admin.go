package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service port.Service
}

func NewAdminHandler(service port.Service, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves the fulfillment axis, which admins may advance freely.
func (ah *AdminHandler) UpdateStatus(ctx *gin.Context) {
	number := domain.OrderNumber(ctx.Param("number"))

	var req updateStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ah.service.AdminUpdateStatus(ctx, number, domain.OrderStatus(req.Status))
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newOrderResp(ah.service, order, time.Now()))
}

type overridePaymentReq struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// OverridePayment forces paymentStatus for OFFLINE-provider orders only;
// gateway-managed orders are rejected.
func (ah *AdminHandler) OverridePayment(ctx *gin.Context) {
	number := domain.OrderNumber(ctx.Param("number"))

	var req overridePaymentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ah.service.AdminOverridePayment(ctx, number, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.logger.Info("Admin payment override applied",
		zap.String("order", string(number)),
		zap.String("payment_status", req.PaymentStatus))

	ah.handleSuccess(ctx, newOrderResp(ah.service, order, time.Now()))
}
