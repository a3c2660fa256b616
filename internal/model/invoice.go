package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from an invoice's total, discount and credit.
type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
	PaymentStatusPartially PaymentStatus = "partially"
	PaymentStatusPaid      PaymentStatus = "paid"
)

// PaymentStatusFor derives the status from the net payable amount (total - discount)
// and the credit applied so far.
func PaymentStatusFor(net, credit decimal.Decimal) PaymentStatus {
	switch {
	case net.Equal(credit):
		return PaymentStatusPaid
	case credit.IsPositive():
		return PaymentStatusPartially
	default:
		return PaymentStatusUnpaid
	}
}

// Invoice is a bill issued to a client. Credit accumulates reconciled payments.
type Invoice struct {
	Base
	Number        string          `json:"number,omitempty"`
	Client        string          `json:"client,omitempty"`
	Date          time.Time       `json:"date"`
	ExpiredDate   time.Time       `json:"expiredDate"`
	Currency      string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	Notes         string          `json:"notes,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	Credit        decimal.Decimal `json:"credit"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" validate:"omitempty,oneof=unpaid partially paid"`
}

var (
	errNegativeTotal    = errors.New("total must not be negative")
	errNegativeDiscount = errors.New("discount must not be negative")
	errNegativeCredit   = errors.New("credit must not be negative")
	errCreditOverNet    = errors.New("credit must not exceed total minus discount")
)

// StatusMismatchError reports a paymentStatus that does not follow from the amounts.
type StatusMismatchError struct {
	Got  PaymentStatus
	Want PaymentStatus
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("paymentStatus %q does not match credit, expected %q", e.Got, e.Want)
}

// Validate checks field constraints, 0 <= credit <= total - discount, and that
// paymentStatus equals PaymentStatusFor(total - discount, credit).
func (i Invoice) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}
	switch {
	case i.Total.IsNegative():
		return errNegativeTotal
	case i.Discount.IsNegative():
		return errNegativeDiscount
	case i.Credit.IsNegative():
		return errNegativeCredit
	case i.Credit.GreaterThan(i.Total.Sub(i.Discount)):
		return errCreditOverNet
	}
	if want := PaymentStatusFor(i.Total.Sub(i.Discount), i.Credit); i.PaymentStatus != want {
		return &StatusMismatchError{Got: i.PaymentStatus, Want: want}
	}
	return nil
}
