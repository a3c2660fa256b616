// Package model contains the persisted document types.
// Documents are stored as JSON, so the json tags below are the field names
// used by search, summary filters and merge-patch updates.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Base holds the fields shared by every collection.
type Base struct {
	ID         string      `json:"id"`
	Removed    bool        `json:"removed"`
	Created    time.Time   `json:"created"`
	Updated    time.Time   `json:"updated"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// DocumentID returns the document identity.
func (b Base) DocumentID() string { return b.ID }

// IsRemoved reports whether the document is soft-deleted.
func (b Base) IsRemoved() bool { return b.Removed }

// AttachmentInfo returns the stored attachment, or nil.
func (b Base) AttachmentInfo() *Attachment { return b.Attachment }

// Attachment references a file kept in object storage.
type Attachment struct {
	Key         string    `json:"key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Collection describes where an entity type is stored and how it is addressed over HTTP.
type Collection struct {
	Entity string
	Table  string
}

var (
	Invoices     = Collection{Entity: "invoice", Table: "invoices"}
	Payments     = Collection{Entity: "payment", Table: "payments"}
	Clients      = Collection{Entity: "client", Table: "clients"}
	PaymentModes = Collection{Entity: "paymentMode", Table: "payment_modes"}
	Settings     = Collection{Entity: "setting", Table: "settings"}
)

// Collections lists every collection the API serves.
func Collections() []Collection {
	return []Collection{Invoices, Payments, Clients, PaymentModes, Settings}
}
