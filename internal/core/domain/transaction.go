package domain

import "time"

type Provider string

// ProviderOffline marks a manually-settled transaction. Anything else is a
// named gateway and is read-only to manual overrides.
const ProviderOffline Provider = "OFFLINE"

type PaymentType string

const (
	PaymentTypeQRIS         PaymentType = "qris"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCOD          PaymentType = "cod"
	PaymentTypeCreditCard   PaymentType = "credit_card"
)

// HasDeadline reports whether the channel carries an expiry semantic.
// COD and card channels settle out of band and never auto-expire.
func (p PaymentType) HasDeadline() bool {
	return p == PaymentTypeQRIS || p == PaymentTypeBankTransfer
}

// PaymentTransaction is one gateway snapshot owned by its order. The
// channel-specific fields are opaque payloads stored verbatim.
type PaymentTransaction struct {
	OrderNumber   OrderNumber
	Provider      Provider
	PaymentType   PaymentType
	TransactionID *string
	Status        PaymentStatus
	ExpiresAt     *time.Time
	VANumber      string
	VABank        string
	QRString      string
	QRImageURL    string
	PaymentURL    string
	Instructions  string
	CreatedAt     time.Time
}
