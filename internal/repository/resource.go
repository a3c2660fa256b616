package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoDocument is returned when no live (non-removed) document matches a filter.
	ErrNoDocument = errors.New("no document found")
	// ErrValidation is returned when a write would store an invalid document.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries the reason a document was rejected on write.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Err} }

// Document is implemented by every stored entity type.
type Document interface {
	DocumentID() string
	IsRemoved() bool
}

// Contains matches documents where any of Fields contains Term, ignoring case.
type Contains struct {
	Fields []string
	Term   string
}

// Filter selects documents. Every store method adds removed = false on its own,
// so soft-deleted documents are never visible through a Store.
type Filter struct {
	ID       string
	Equals   map[string]string
	Contains *Contains
	// Lock takes a row lock on the matched document when run inside a transaction.
	Lock bool
}

// ByID returns a filter matching a single document.
func ByID(id string) Filter {
	return Filter{ID: id}
}

// Patch is a merge-patch: Set replaces the named fields, Inc adds to numeric fields.
// Fields not named are left untouched.
type Patch struct {
	Set map[string]any
	Inc map[string]decimal.Decimal
}

// Store defines document access for one collection.
type Store[T Document] interface {
	// FindOne returns the first live document matching f, or ErrNoDocument.
	FindOne(ctx context.Context, f Filter) (*T, error)

	// Find returns up to limit live documents matching f.
	Find(ctx context.Context, f Filter, limit int) ([]T, error)

	// CountDocuments counts live documents matching f.
	CountDocuments(ctx context.Context, f Filter) (int64, error)

	// FindOneAndUpdate applies p to the live document matching f, validates the result
	// and returns the stored value. It returns ErrNoDocument when nothing matches and
	// a *ValidationError when the patched document is invalid.
	FindOneAndUpdate(ctx context.Context, f Filter, p Patch) (*T, error)
}

// Transactor runs fn so that every Store call made with the ctx it receives
// commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
