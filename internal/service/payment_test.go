package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billingapi/internal/model"
	"billingapi/internal/money"
	"billingapi/internal/repository"
	repoMocks "billingapi/internal/repository/mocks"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type paymentMocks struct {
	payments *repoMocks.MockStore[model.Payment]
	invoices *repoMocks.MockStore[model.Invoice]
	tx       *repoMocks.MockTransactor
}

func TestPaymentService_Update(t *testing.T) {
	ctx := context.Background()
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()

	storedPayment := func(ref model.InvoiceRef) *model.Payment {
		return &model.Payment{Base: model.Base{ID: paymentID}, Invoice: ref, Amount: d("200")}
	}
	storedInvoice := &model.Invoice{
		Base:          model.Base{ID: invoiceID},
		Total:         d("1100"),
		Discount:      d("100"),
		Credit:        d("200"),
		PaymentStatus: model.PaymentStatusPartially,
	}
	lockPayment := repository.Filter{ID: paymentID, Lock: true}
	lockInvoice := repository.Filter{ID: invoiceID, Lock: true}

	invoiceWrite := func(inc string, status model.PaymentStatus) any {
		return mock.MatchedBy(func(p repository.Patch) bool {
			return p.Inc["credit"].Equal(d(inc)) && p.Set["paymentStatus"] == status
		})
	}

	tests := []struct {
		name        string
		in          PaymentUpdate
		setupMocks  func(m paymentMocks)
		wantStatus  int
		wantSuccess bool
		wantMessage string
		wantErrKind string
		wantErr     bool
	}{
		{
			name: "amount raised within balance",
			in:   PaymentUpdate{Amount: d("500")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
				m.payments.On("FindOneAndUpdate", mock.Anything, repository.ByID(paymentID), mock.MatchedBy(func(p repository.Patch) bool {
					amt, ok := p.Set["amount"].(decimal.Decimal)
					_, hasUpdated := p.Set["updated"]
					return ok && amt.Equal(d("500")) && hasUpdated && p.Inc == nil
				})).Return(&model.Payment{Base: model.Base{ID: paymentID}, Amount: d("500")}, nil)
				m.invoices.On("FindOneAndUpdate", mock.Anything, repository.ByID(invoiceID), invoiceWrite("300", model.PaymentStatusPartially)).
					Return(&model.Invoice{}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Successfully updated the Payment",
		},
		{
			name: "amount settles the invoice",
			in:   PaymentUpdate{Amount: d("1000")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
				m.payments.On("FindOneAndUpdate", mock.Anything, repository.ByID(paymentID), mock.Anything).Return(&model.Payment{}, nil)
				m.invoices.On("FindOneAndUpdate", mock.Anything, repository.ByID(invoiceID), invoiceWrite("800", model.PaymentStatusPaid)).
					Return(&model.Invoice{}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Successfully updated the Payment",
		},
		{
			name: "lowered amount releases credit",
			in:   PaymentUpdate{Amount: d("50")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
				m.payments.On("FindOneAndUpdate", mock.Anything, repository.ByID(paymentID), mock.Anything).Return(&model.Payment{}, nil)
				m.invoices.On("FindOneAndUpdate", mock.Anything, repository.ByID(invoiceID), invoiceWrite("-150", model.PaymentStatusPartially)).
					Return(&model.Invoice{}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Successfully updated the Payment",
		},
		{
			name: "expanded invoice reference",
			in:   PaymentUpdate{Amount: d("100")},
			setupMocks: func(m paymentMocks) {
				ref := model.InvoiceRef{Expanded: &model.Invoice{Base: model.Base{ID: invoiceID}}}
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(ref), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
				m.payments.On("FindOneAndUpdate", mock.Anything, repository.ByID(paymentID), mock.Anything).Return(&model.Payment{}, nil)
				m.invoices.On("FindOneAndUpdate", mock.Anything, repository.ByID(invoiceID), invoiceWrite("-100", model.PaymentStatusPartially)).
					Return(&model.Invoice{}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Successfully updated the Payment",
		},
		{
			name: "amount over balance reports the max amount",
			in:   PaymentUpdate{Amount: d("1100")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
			},
			wantStatus:  http.StatusAccepted,
			wantMessage: "The Max Amount you can add is 1000.00",
			wantErrKind: ErrorKindValidation,
		},
		{
			name:        "zero amount",
			in:          PaymentUpdate{Amount: decimal.Zero},
			setupMocks:  func(m paymentMocks) {},
			wantStatus:  http.StatusAccepted,
			wantMessage: MsgZeroAmount,
			wantErrKind: ErrorKindValidation,
		},
		{
			name: "payment not found",
			in:   PaymentUpdate{Amount: d("10")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(nil, repository.ErrNoDocument)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: MsgNoDocument,
			wantErrKind: ErrorKindNotFound,
		},
		{
			name: "malformed invoice reference",
			in:   PaymentUpdate{Amount: d("10")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: "nope"}), nil)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: MsgNoDocument,
			wantErrKind: ErrorKindNotFound,
		},
		{
			name: "invoice removed",
			in:   PaymentUpdate{Amount: d("10")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(nil, repository.ErrNoDocument)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: MsgNoDocument,
			wantErrKind: ErrorKindNotFound,
		},
		{
			name: "invoice write rejected by validation",
			in:   PaymentUpdate{Amount: d("100")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(storedPayment(model.InvoiceRef{ID: invoiceID}), nil)
				m.invoices.On("FindOne", mock.Anything, lockInvoice).Return(storedInvoice, nil)
				m.payments.On("FindOneAndUpdate", mock.Anything, repository.ByID(paymentID), mock.Anything).Return(&model.Payment{}, nil)
				m.invoices.On("FindOneAndUpdate", mock.Anything, repository.ByID(invoiceID), mock.Anything).
					Return(nil, &repository.ValidationError{Err: errors.New("credit must not be negative")})
			},
			wantStatus:  http.StatusAccepted,
			wantMessage: "credit must not be negative",
			wantErrKind: ErrorKindValidation,
		},
		{
			name: "store failure",
			in:   PaymentUpdate{Amount: d("10")},
			setupMocks: func(m paymentMocks) {
				m.payments.On("FindOne", mock.Anything, lockPayment).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := paymentMocks{
				payments: new(repoMocks.MockStore[model.Payment]),
				invoices: new(repoMocks.MockStore[model.Invoice]),
				tx:       new(repoMocks.MockTransactor),
			}
			m.tx.On("WithinTransaction", mock.Anything).Maybe()
			tt.setupMocks(m)

			svc := NewPaymentService(m.payments, m.invoices, m.tx, money.New(money.DefaultPrecision), nil)
			resp, err := svc.Update(ctx, paymentID, tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantStatus, resp.Outcome.HTTPStatus())
				assert.Equal(t, tt.wantSuccess, resp.Success)
				assert.Equal(t, tt.wantMessage, resp.Message)
				assert.Equal(t, tt.wantErrKind, resp.Error)
			}

			m.payments.AssertExpectations(t)
			m.invoices.AssertExpectations(t)
		})
	}
}

func TestPaymentService_UpdateOptionalFields(t *testing.T) {
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()

	payments := new(repoMocks.MockStore[model.Payment])
	invoices := new(repoMocks.MockStore[model.Invoice])
	tx := new(repoMocks.MockTransactor)
	tx.On("WithinTransaction", mock.Anything).Once()

	payments.On("FindOne", mock.Anything, mock.Anything).
		Return(&model.Payment{Base: model.Base{ID: paymentID}, Invoice: model.InvoiceRef{ID: invoiceID}, Amount: d("200")}, nil)
	invoices.On("FindOne", mock.Anything, mock.Anything).
		Return(&model.Invoice{Base: model.Base{ID: invoiceID}, Total: d("1000"), Credit: d("200")}, nil)

	var got repository.Patch
	payments.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(repository.Patch) }).
		Return(&model.Payment{}, nil)
	invoices.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything).Return(&model.Invoice{}, nil)

	number := int64(42)
	ref := "TRX-9"
	svc := NewPaymentService(payments, invoices, tx, money.New(2), nil)
	resp, err := svc.Update(context.Background(), paymentID, PaymentUpdate{Amount: d("200.004"), Number: &number, Ref: &ref})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), got.Set["number"])
	assert.Equal(t, "TRX-9", got.Set["ref"])
	assert.True(t, got.Set["amount"].(decimal.Decimal).Equal(d("200")))
	assert.NotContains(t, got.Set, "mode")
	assert.NotContains(t, got.Set, "description")
	tx.AssertExpectations(t)
}

func TestPaymentService_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	payments := new(repoMocks.MockStore[model.Payment])
	payments.On("FindOne", mock.Anything, mock.Anything).Return(nil, repository.ErrNoDocument)
	tx := new(repoMocks.MockTransactor)
	tx.On("WithinTransaction", mock.Anything)

	svc := NewPaymentService(payments, new(repoMocks.MockStore[model.Invoice]), tx, money.New(2), metrics)

	_, _ = svc.Update(context.Background(), uuid.NewString(), PaymentUpdate{Amount: decimal.Zero})
	_, _ = svc.Update(context.Background(), uuid.NewString(), PaymentUpdate{Amount: d("5")})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reconciliations.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reconciliations.WithLabelValues("not_found")))
}
