package domain

// Source tags where an observed payment status came from.
type Source string

const (
	SourceWebhook Source = "webhook"
	SourcePoll    Source = "poll"
	SourceSync    Source = "sync"
	SourceExpiry  Source = "expiry"
)

// Observation is advisory input to reconciliation: a status value plus its
// source. It is never assigned to an order directly.
type Observation struct {
	Status PaymentStatus
	Source Source
	// TransactionID is the gateway-assigned id, when the source knows it.
	TransactionID *string
	// Authorized is set only by the admin refund path; an unauthorized
	// REFUNDED observation never moves a PAID order.
	Authorized bool
}

// SideEffect is the instruction the pure core returns to its caller.
type SideEffect string

const (
	SideEffectNone         SideEffect = "NONE"
	SideEffectMarkPaid     SideEffect = "MARK_PAID"
	SideEffectMarkExpired  SideEffect = "MARK_EXPIRED"
	SideEffectMarkFailed   SideEffect = "MARK_FAILED"
	SideEffectMarkRefunded SideEffect = "MARK_REFUNDED"
)
