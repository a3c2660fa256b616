package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"billingapi/internal/logger"
	"billingapi/internal/model"
	"billingapi/internal/repository"
	"billingapi/internal/storage"
)

// PresignExpiry is how long an attachment download URL stays valid.
const PresignExpiry = 15 * time.Minute

var ErrReaderNil = errors.New("reader is nil")

// Attachable documents can carry one file in object storage.
type Attachable interface {
	repository.Document
	AttachmentInfo() *model.Attachment
}

// AttachmentURL is the payload of a successful URL call.
type AttachmentURL struct {
	URL       string            `json:"url"`
	ExpiresAt time.Time         `json:"expiresAt"`
	File      *model.Attachment `json:"file"`
}

// AttachmentService stores files against documents of one collection.
type AttachmentService[T Attachable] interface {
	// Upload streams the file to object storage and records it on the document,
	// replacing any previous attachment. The object is removed again if the document write fails.
	Upload(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*Response, error)

	// URL returns a presigned download URL for the document's attachment.
	URL(ctx context.Context, id string) (*Response, error)
}

type attachmentService[T Attachable] struct {
	collection model.Collection
	docs       repository.Store[T]
	store      storage.Storage
	now        func() time.Time
}

// NewAttachmentService constructs an AttachmentService for collection c.
func NewAttachmentService[T Attachable](c model.Collection, docs repository.Store[T], store storage.Storage) AttachmentService[T] {
	return &attachmentService[T]{collection: c, docs: docs, store: store, now: time.Now}
}

func (s *attachmentService[T]) Upload(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*Response, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	current, err := s.docs.FindOne(ctx, repository.ByID(id))
	if err != nil {
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, err
	}

	key := path.Join(s.collection.Entity, id, uuid.NewString()+filepath.Ext(filename))
	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	att := model.Attachment{
		Key:         info.Key,
		Filename:    filename,
		ContentType: info.ContentType,
		Size:        info.Size,
		UploadedAt:  s.now().UTC(),
	}
	doc, err := s.docs.FindOneAndUpdate(ctx, repository.ByID(id), repository.Patch{
		Set: map[string]any{"attachment": att},
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if prev := (*current).AttachmentInfo(); prev != nil && prev.Key != key {
		if err := s.store.Delete(ctx, prev.Key); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("key", prev.Key).Msg("failed to delete replaced attachment")
		}
	}
	return ok(doc, "Successfully uploaded the attachment"), nil
}

func (s *attachmentService[T]) URL(ctx context.Context, id string) (*Response, error) {
	doc, err := s.docs.FindOne(ctx, repository.ByID(id))
	if err != nil {
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, err
	}

	att := (*doc).AttachmentInfo()
	if att == nil {
		return &Response{Message: "No attachment found", Error: ErrorKindNotFound, Outcome: OutcomeNotFound}, nil
	}

	u, err := s.store.PresignGet(ctx, att.Key, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", att.Key, err)
	}
	return ok(AttachmentURL{URL: u, ExpiresAt: s.now().UTC().Add(PresignExpiry), File: att}, "we found this attachment"), nil
}
