package service

import (
	"errors"
	"net/http"

	"billingapi/internal/repository"
)

// Outcome classifies a Response for the transport layer.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeSoftFailure covers validation failures and searches with no match.
	OutcomeSoftFailure
	OutcomeNotFound
	OutcomeEmptyCollection
)

// HTTPStatus maps an outcome to its response code.
func (o Outcome) HTTPStatus() int {
	switch o {
	case OutcomeSoftFailure:
		return http.StatusAccepted
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeEmptyCollection:
		return http.StatusNonAuthoritativeInfo
	default:
		return http.StatusOK
	}
}

const (
	ErrorKindValidation = "ValidationError"
	ErrorKindNotFound   = "NotFoundError"
)

const (
	MsgNoDocument      = "No document found"
	MsgEmptyCollection = "Collection is Empty"
	MsgZeroAmount      = "minimum amount cannot be zero"
)

// Response is the envelope every resource operation answers with.
// Expected failures are reported here; infrastructure faults are returned as errors.
type Response struct {
	Success bool    `json:"success"`
	Result  any     `json:"result"`
	Message string  `json:"message"`
	Error   string  `json:"error,omitempty"`
	Outcome Outcome `json:"-"`
}

func ok(result any, msg string) *Response {
	return &Response{Success: true, Result: result, Message: msg, Outcome: OutcomeOK}
}

func notFound() *Response {
	return &Response{Result: nil, Message: MsgNoDocument, Error: ErrorKindNotFound, Outcome: OutcomeNotFound}
}

func invalid(msg string) *Response {
	return &Response{Result: nil, Message: msg, Error: ErrorKindValidation, Outcome: OutcomeSoftFailure}
}

// Invalid builds the soft validation envelope for input rejected before it reaches a service.
func Invalid(msg string) *Response {
	return invalid(msg)
}

func noMatch(msg string) *Response {
	return &Response{Result: []any{}, Message: msg, Outcome: OutcomeSoftFailure}
}

// softFailure turns expected store errors into envelopes. It returns nil for
// errors the caller must propagate.
func softFailure(err error) *Response {
	var verr *repository.ValidationError
	switch {
	case errors.Is(err, repository.ErrNoDocument):
		return notFound()
	case errors.As(err, &verr):
		return invalid(verr.Error())
	case errors.Is(err, repository.ErrValidation):
		return invalid(err.Error())
	}
	return nil
}
