package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"billingapi/internal/logger"
	"billingapi/internal/model"
	"billingapi/internal/money"
	"billingapi/internal/repository"
)

// PaymentUpdate carries the mutable payment fields. Nil fields are left as stored.
// A missing amount decodes as zero and is rejected.
type PaymentUpdate struct {
	Number      *int64          `json:"number,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        *string         `json:"mode,omitempty"`
	Ref         *string         `json:"ref,omitempty"`
	Description *string         `json:"description,omitempty"`
}

// PaymentService reconciles payment changes against the owning invoice.
type PaymentService interface {
	// Update changes a payment and moves the invoice credit by the same delta.
	// The invoice's paymentStatus is derived from the new credit. Both writes
	// commit together or not at all.
	Update(ctx context.Context, id string, in PaymentUpdate) (*Response, error)
}

type paymentService struct {
	payments repository.Store[model.Payment]
	invoices repository.Store[model.Invoice]
	tx       repository.Transactor
	calc     money.Calculator
	metrics  *Metrics
	tracer   trace.Tracer
	now      func() time.Time
}

// NewPaymentService constructs a PaymentService. metrics may be nil.
func NewPaymentService(
	payments repository.Store[model.Payment],
	invoices repository.Store[model.Invoice],
	tx repository.Transactor,
	calc money.Calculator,
	metrics *Metrics,
) PaymentService {
	return &paymentService{
		payments: payments,
		invoices: invoices,
		tx:       tx,
		calc:     calc,
		metrics:  metrics,
		tracer:   otel.Tracer("billingapi/service"),
		now:      time.Now,
	}
}

// errRejected aborts the transaction after a soft rejection has been recorded.
var errRejected = errors.New("payment update rejected")

func (s *paymentService) Update(ctx context.Context, id string, in PaymentUpdate) (resp *Response, err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.Update", trace.WithAttributes(attribute.String("payment.id", id)))
	defer span.End()
	defer func() { s.metrics.observeReconciliation(resp, err) }()

	log := logger.FromContext(ctx)

	amount := s.calc.Round(in.Amount)
	if amount.IsZero() {
		return invalid(MsgZeroAmount), nil
	}

	var rejected *Response
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.payments.FindOne(ctx, repository.Filter{ID: id, Lock: true})
		if err != nil {
			return err
		}

		invoiceID, err := payment.Invoice.Resolve()
		if err != nil {
			log.Warn().Err(err).Str("payment_id", id).Msg("payment references a malformed invoice id")
			return repository.ErrNoDocument
		}
		span.SetAttributes(attribute.String("invoice.id", invoiceID))

		invoice, err := s.invoices.FindOne(ctx, repository.Filter{ID: invoiceID, Lock: true})
		if err != nil {
			return err
		}

		previousAmount := payment.Amount
		changedAmount := s.calc.Sub(amount, previousAmount)
		maxAllowed := s.calc.Sub(invoice.Total, s.calc.Add(invoice.Discount, invoice.Credit))

		if changedAmount.GreaterThan(maxAllowed) {
			maxAmount := s.calc.Add(maxAllowed, previousAmount)
			rejected = invalid(fmt.Sprintf("The Max Amount you can add is %s", maxAmount.StringFixed(s.calc.Precision())))
			return errRejected
		}

		newCredit := s.calc.Add(invoice.Credit, changedAmount)
		status := model.PaymentStatusFor(s.calc.Sub(invoice.Total, invoice.Discount), newCredit)

		set := map[string]any{
			"amount":  amount,
			"updated": s.now().UTC(),
		}
		if in.Number != nil {
			set["number"] = *in.Number
		}
		if in.Date != nil {
			set["date"] = *in.Date
		}
		if in.Mode != nil {
			set["mode"] = *in.Mode
		}
		if in.Ref != nil {
			set["ref"] = *in.Ref
		}
		if in.Description != nil {
			set["description"] = *in.Description
		}

		updated, err := s.payments.FindOneAndUpdate(ctx, repository.ByID(id), repository.Patch{Set: set})
		if err != nil {
			return err
		}
		if _, err := s.invoices.FindOneAndUpdate(ctx, repository.ByID(invoiceID), repository.Patch{
			Set: map[string]any{"paymentStatus": status},
			Inc: map[string]decimal.Decimal{"credit": changedAmount},
		}); err != nil {
			return err
		}

		log.Info().
			Str("payment_id", id).
			Str("invoice_id", invoiceID).
			Str("changed_amount", changedAmount.String()).
			Str("credit", newCredit.String()).
			Str("payment_status", string(status)).
			Msg("payment reconciled")

		resp = ok(updated, "Successfully updated the Payment")
		return nil
	})

	if err != nil {
		if errors.Is(err, errRejected) {
			return rejected, nil
		}
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment update failed")
		return nil, fmt.Errorf("update payment %s: %w", id, err)
	}
	return resp, nil
}
