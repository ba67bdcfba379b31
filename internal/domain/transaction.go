package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the canonical outcome of a payment attempt
// as reported by the gateway action code.
type TransactionStatus string

const (
	// StatusCreated means the order is registered but not yet paid (action code in the created set).
	StatusCreated TransactionStatus = "created"
	// StatusPayed means the issuing bank approved the payment (success action code).
	StatusPayed TransactionStatus = "payed"
	// StatusError covers every other action code the gateway can report.
	StatusError TransactionStatus = "error"
)

// Card holds the authorization card details as returned by the gateway.
// The PAN is already masked by the gateway and is not validated further.
// Immutable once constructed.
type Card struct {
	Number     string `json:"number"`
	Holder     string `json:"holder"`
	Expiration string `json:"expiration"`
}

// TransactionResult is the normalized gateway verdict for one payment attempt.
// Status is always set to exactly one of the three statuses.
type TransactionResult struct {
	Code        int               `json:"code"`
	Description string            `json:"description"`
	Status      TransactionStatus `json:"status"`
	PayedAt     *time.Time        `json:"payed_at,omitempty"`
	PayedAmount *int64            `json:"payed_amount,omitempty"`
}

// Transaction represents a single payment attempt against the gateway.
// Instances are built in full from a gateway response and are never mutated
// afterwards; ownership transfers entirely to the caller.
type Transaction struct {
	TransactionID string             `json:"transaction_id"`
	OrderNumber   string             `json:"order_number"`
	Description   string             `json:"description"`
	Cost          int64              `json:"cost"` // minor currency units
	CreatedAt     time.Time          `json:"created_at"`
	URL           string             `json:"url,omitempty"` // payment form URL, set on creation only
	IP            string             `json:"ip,omitempty"`
	Card          *Card              `json:"card,omitempty"`
	Result        *TransactionResult `json:"result,omitempty"`

	// Gateway names the adapter instance that produced this transaction.
	// It is a routing handle for future status updates, not an ownership edge.
	Gateway string `json:"gateway"`
}

// Amount returns the cost in major currency units.
func (t *Transaction) Amount() decimal.Decimal {
	return decimal.New(t.Cost, -2)
}

// IsPayed returns true if the gateway approved the payment.
func (t *Transaction) IsPayed() bool {
	return t.Result != nil && t.Result.Status == StatusPayed
}

// IsFinal returns true if the transaction can no longer change state.
func (t *Transaction) IsFinal() bool {
	return t.Result != nil && t.Result.Status != StatusCreated
}
