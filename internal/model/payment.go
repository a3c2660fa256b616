package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidReference is returned when a payment's invoice reference is not a valid id.
var ErrInvalidReference = errors.New("invalid invoice reference")

// InvoiceRef points from a payment to its invoice. Stored payments carry a bare id,
// while populated reads may carry the whole invoice; Resolve normalizes both.
type InvoiceRef struct {
	ID       string
	Expanded *Invoice
}

// Resolve returns the referenced invoice id.
func (r InvoiceRef) Resolve() (string, error) {
	id := r.ID
	if r.Expanded != nil {
		id = r.Expanded.ID
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, id)
	}
	return id, nil
}

// MarshalJSON encodes the expanded invoice when present, otherwise the bare id.
func (r InvoiceRef) MarshalJSON() ([]byte, error) {
	if r.Expanded != nil {
		return json.Marshal(r.Expanded)
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts either a string id or an invoice object.
func (r *InvoiceRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = InvoiceRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = InvoiceRef{ID: id}
		return nil
	case len(data) > 0 && data[0] == '{':
		var inv Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return err
		}
		*r = InvoiceRef{ID: inv.ID, Expanded: &inv}
		return nil
	default:
		return fmt.Errorf("invoice reference must be a string or an object, got %s", data)
	}
}

// Payment is an amount received against an invoice.
type Payment struct {
	Base
	Invoice     InvoiceRef      `json:"invoice"`
	Number      int64           `json:"number"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        string          `json:"mode,omitempty"`
	Ref         string          `json:"ref,omitempty"`
	Description string          `json:"description,omitempty"`
}

var errZeroAmount = errors.New("amount must not be zero")

// Validate rejects zero amounts and malformed invoice references.
func (p Payment) Validate() error {
	if p.Amount.IsZero() {
		return errZeroAmount
	}
	if _, err := p.Invoice.Resolve(); err != nil {
		return err
	}
	return nil
}
