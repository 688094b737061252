// Package payment defines the narrow contract the checkout flow has with the
// payment provider, and the Flutterwave implementation of it.
package payment

import "context"

// Status is a terminal charge state as reported by the provider. Exactly one
// terminal status exists per initiated charge.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
	// StatusCancelled means the shopper closed the payment widget.
	StatusCancelled Status = "cancelled"
)

// Customer is the contact data attached to a charge.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// ChargeRequest initiates a hosted payment. AmountKobo is in minor units;
// conversion to the provider's decimal format happens inside the gateway.
type ChargeRequest struct {
	TxRef      string
	AmountKobo int64
	Customer   Customer
}

// InitiateResult is returned when a charge was successfully started.
type InitiateResult struct {
	TxRef       string
	PaymentLink string
}

// ChargeOutcome is the provider's verdict on a charge, obtained by
// verification after a callback.
type ChargeOutcome struct {
	TxRef         string
	TransactionID string
	Status        Status
	AmountKobo    int64
	Currency      string
	Message       string
}

// Gateway is the payment provider seen by the checkout coordinator.
// Initiate must be called at most once per TxRef; an error means the charge
// never started (typically missing credentials) and nothing was taken.
type Gateway interface {
	Initiate(ctx context.Context, req ChargeRequest) (*InitiateResult, error)
	Verify(ctx context.Context, txRef string) (*ChargeOutcome, error)
}
