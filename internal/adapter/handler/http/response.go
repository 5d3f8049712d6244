package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storewave/payrecon/internal/core/domain"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrGatewayUnavailable: http.StatusBadGateway,
	domain.ErrOrderBadNumber:     http.StatusUnprocessableEntity,
	domain.ErrBadStatusValue:     http.StatusUnprocessableEntity,
	domain.ErrOrderNotCancelable: http.StatusConflict,
	domain.ErrPaymentFinal:       http.StatusConflict,
	domain.ErrProviderReadOnly:   http.StatusForbidden,
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithError(statusCode, err)
}
