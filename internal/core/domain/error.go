package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest         = errors.New("error parsing request")
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrOrderBadNumber     = errors.New("order number is not valid")
	ErrOrderNotCancelable = errors.New("order payment is no longer pending")
	ErrPaymentFinal       = errors.New("payment status is terminal and cannot be changed")
	ErrProviderReadOnly   = errors.New("payment status is managed by the gateway")
	ErrBadStatusValue     = errors.New("unknown status value")
)
