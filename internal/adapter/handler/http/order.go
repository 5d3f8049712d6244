package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
	"github.com/storewave/payrecon/internal/core/watch"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service    port.Service
	supervisor *watch.Supervisor
}

func NewOrderHandler(service port.Service, supervisor *watch.Supervisor, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler:    *NewHandler(logger),
		service:    service,
		supervisor: supervisor,
	}, nil
}

type paymentReq struct {
	Provider      string     `json:"provider" binding:"required"`
	PaymentType   string     `json:"payment_type" binding:"required,oneof=qris bank_transfer cod credit_card"`
	TransactionID *string    `json:"transaction_id"`
	ExpiresAt     *time.Time `json:"expires_at"`
	VANumber      string     `json:"va_number"`
	VABank        string     `json:"va_bank"`
	QRString      string     `json:"qr_string"`
	QRImageURL    string     `json:"qr_image_url"`
	PaymentURL    string     `json:"payment_url"`
	Instructions  string     `json:"instructions"`
}

type createOrderReq struct {
	Number   string      `json:"number" binding:"required"`
	Total    string      `json:"total" binding:"required"`
	Currency string      `json:"currency"`
	Payment  *paymentReq `json:"payment"`
}

type TransactionResp struct {
	Provider      string     `json:"provider"`
	PaymentType   string     `json:"payment_type"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	VANumber      string     `json:"va_number,omitempty"`
	VABank        string     `json:"va_bank,omitempty"`
	QRString      string     `json:"qr_string,omitempty"`
	QRImageURL    string     `json:"qr_image_url,omitempty"`
	PaymentURL    string     `json:"payment_url,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
}

type OrderResp struct {
	Number               string           `json:"number"`
	Status               string           `json:"status"`
	PaymentStatus        string           `json:"payment_status"`
	Total                decimal.Decimal  `json:"total"`
	Currency             string           `json:"currency"`
	CreatedAt            time.Time        `json:"created_at"`
	PaidAt               *time.Time       `json:"paid_at,omitempty"`
	TimeRemainingSeconds *int64           `json:"time_remaining_seconds"`
	Transaction          *TransactionResp `json:"transaction,omitempty"`
}

func newOrderResp(service port.Service, o *domain.Order, now time.Time) OrderResp {
	resp := OrderResp{
		Number:               string(o.Number),
		Status:               string(o.Status),
		PaymentStatus:        string(o.PaymentStatus),
		Total:                o.Total,
		Currency:             o.Currency,
		CreatedAt:            o.CreatedAt,
		PaidAt:               o.PaidAt,
		TimeRemainingSeconds: service.TimeRemaining(o, now),
	}
	if tx := o.LatestTransaction(); tx != nil {
		resp.Transaction = &TransactionResp{
			Provider:      string(tx.Provider),
			PaymentType:   string(tx.PaymentType),
			TransactionID: tx.TransactionID,
			Status:        string(tx.Status),
			ExpiresAt:     tx.ExpiresAt,
			VANumber:      tx.VANumber,
			VABank:        tx.VABank,
			QRString:      tx.QRString,
			QRImageURL:    tx.QRImageURL,
			PaymentURL:    tx.PaymentURL,
			Instructions:  tx.Instructions,
		}
	}
	return resp
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req createOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	total, err := decimal.Parse(req.Total)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	if req.Currency == "" {
		req.Currency = "IDR"
	}

	order := &domain.Order{
		Number:   domain.OrderNumber(req.Number),
		Total:    total,
		Currency: req.Currency,
	}
	if req.Payment != nil {
		order.Transactions = []*domain.PaymentTransaction{{
			Provider:      domain.Provider(req.Payment.Provider),
			PaymentType:   domain.PaymentType(req.Payment.PaymentType),
			TransactionID: req.Payment.TransactionID,
			ExpiresAt:     req.Payment.ExpiresAt,
			VANumber:      req.Payment.VANumber,
			VABank:        req.Payment.VABank,
			QRString:      req.Payment.QRString,
			QRImageURL:    req.Payment.QRImageURL,
			PaymentURL:    req.Payment.PaymentURL,
			Instructions:  req.Payment.Instructions,
		}}
	}

	newOrder, err := oh.service.CreateOrder(ctx, order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.supervisor.Watch(newOrder)

	oh.handleSuccessWithStatus(ctx, newOrderResp(oh.service, newOrder, time.Now()), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	number := domain.OrderNumber(ctx.Param("number"))

	order, err := oh.service.GetOrder(ctx, number)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(oh.service, order, time.Now()))
}

type SyncResp struct {
	Synced        bool      `json:"synced"`
	PaymentStatus string    `json:"payment_status"`
	Order         OrderResp `json:"order"`
}

// SyncPayment pulls gateway truth for one order. A gateway outage is
// non-fatal: the last persisted state is returned with synced=false so the
// caller can keep rendering calmly.
func (oh *OrderHandler) SyncPayment(ctx *gin.Context) {
	number := domain.OrderNumber(ctx.Param("number"))

	order, _, err := oh.service.SyncPayment(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			stored, rerr := oh.service.GetOrder(ctx, number)
			if rerr != nil {
				oh.handleError(ctx, rerr)
				return
			}
			oh.handleSuccess(ctx, SyncResp{
				Synced:        false,
				PaymentStatus: string(stored.PaymentStatus),
				Order:         newOrderResp(oh.service, stored, time.Now()),
			})
			return
		}
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, SyncResp{
		Synced:        true,
		PaymentStatus: string(order.PaymentStatus),
		Order:         newOrderResp(oh.service, order, time.Now()),
	})
}

// CancelOrder is the expiry-path cancellation. Reconciliation refuses it
// while the deadline has not passed or once payment landed.
func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	number := domain.OrderNumber(ctx.Param("number"))

	order, effect, err := oh.service.CancelExpired(ctx, number)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	if effect != domain.SideEffectMarkExpired {
		oh.handleError(ctx, domain.ErrOrderNotCancelable)
		return
	}

	oh.supervisor.Cancel(number)

	oh.handleSuccess(ctx, newOrderResp(oh.service, order, time.Now()))
}
