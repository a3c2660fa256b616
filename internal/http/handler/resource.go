package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"billingapi/internal/service"
)

// ResourceAPI is the generic service surface of one collection.
// Any service.ResourceService[T] satisfies it.
type ResourceAPI interface {
	Read(ctx context.Context, id string) (*service.Response, error)
	Update(ctx context.Context, id string, patch map[string]any) (*service.Response, error)
	Search(ctx context.Context, q service.SearchQuery) (*service.Response, error)
	Summary(ctx context.Context, f *service.SummaryFilter) (*service.Response, error)
}

// AttachmentAPI is satisfied by any service.AttachmentService[T].
type AttachmentAPI interface {
	Upload(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*service.Response, error)
	URL(ctx context.Context, id string) (*service.Response, error)
}

// Malformed bodies are soft validation failures, answered like any other.
const (
	MsgMalformedPatch   = "body must be a JSON object"
	MsgMalformedPayment = "invalid payment body"
)

func respond(c *fiber.Ctx, resp *service.Response, err error) error {
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(resp.Outcome.HTTPStatus()).JSON(resp)
}

// ReadResource godoc
// @Summary Read a document
// @Tags resources
// @Produce json
// @Param entity path string true "Collection" Enums(invoice, payment, client, paymentMode, setting)
// @Param id path string true "Document ID"
// @Success 200 {object} service.Response
// @Failure 404 {object} service.Response
// @Router /api/{entity}/read/{id} [get]
func ReadResource(svc ResourceAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.Read(c.UserContext(), c.Params("id"))
		return respond(c, resp, err)
	}
}

// UpdateResource godoc
// @Summary Merge-patch a document
// @Description Only supplied fields change. removed is always reset to false.
// @Tags resources
// @Accept json
// @Produce json
// @Param entity path string true "Collection" Enums(invoice, client, paymentMode, setting)
// @Param id path string true "Document ID"
// @Param patch body object true "Fields to change"
// @Success 200 {object} service.Response
// @Success 202 {object} service.Response "invalid patch or malformed body"
// @Failure 404 {object} service.Response
// @Router /api/{entity}/update/{id} [patch]
func UpdateResource(svc ResourceAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dec := json.NewDecoder(bytes.NewReader(c.Body()))
		dec.UseNumber()
		var patch map[string]any
		if err := dec.Decode(&patch); err != nil {
			return respond(c, service.Invalid(MsgMalformedPatch), nil)
		}

		resp, err := svc.Update(c.UserContext(), c.Params("id"), patch)
		return respond(c, resp, err)
	}
}

// UpdatePayment godoc
// @Summary Update a payment and reconcile its invoice
// @Tags payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body service.PaymentUpdate true "New payment fields"
// @Success 200 {object} service.Response
// @Success 202 {object} service.Response "malformed body, or amount is zero or over the invoice balance"
// @Failure 404 {object} service.Response
// @Router /api/payment/update/{id} [patch]
func UpdatePayment(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PaymentUpdate
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return respond(c, service.Invalid(MsgMalformedPayment), nil)
		}

		resp, err := svc.Update(c.UserContext(), c.Params("id"), in)
		return respond(c, resp, err)
	}
}

// SearchResource godoc
// @Summary Search a collection
// @Tags resources
// @Produce json
// @Param entity path string true "Collection"
// @Param q query string true "Search term"
// @Param fields query string false "Comma-separated field names"
// @Success 200 {object} service.Response
// @Success 202 {object} service.Response "no match"
// @Router /api/{entity}/search [get]
func SearchResource(svc ResourceAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.SearchQuery{Q: c.Query("q")}
		if fields := c.Query("fields"); fields != "" {
			q.Fields = strings.Split(fields, ",")
		}

		resp, err := svc.Search(c.UserContext(), q)
		return respond(c, resp, err)
	}
}

// SummaryResource godoc
// @Summary Count documents in a collection
// @Tags resources
// @Produce json
// @Param entity path string true "Collection"
// @Param filter query string false "Field to filter on"
// @Param equal query string false "Value the field must equal"
// @Success 200 {object} service.Response
// @Success 203 {object} service.Response "collection is empty"
// @Router /api/{entity}/summary [get]
func SummaryResource(svc ResourceAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f *service.SummaryFilter
		if field := c.Query("filter"); field != "" {
			f = &service.SummaryFilter{Field: field, Value: c.Query("equal")}
		}

		resp, err := svc.Summary(c.UserContext(), f)
		return respond(c, resp, err)
	}
}

// UploadAttachment godoc
// @Summary Attach a file to a document
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param entity path string true "Collection"
// @Param id path string true "Document ID"
// @Param file formData file true "File"
// @Success 200 {object} service.Response
// @Failure 400 {object} errorPayload
// @Failure 404 {object} service.Response
// @Router /api/{entity}/upload/{id} [post]
func UploadAttachment(svc AttachmentAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		resp, err := svc.Upload(c.UserContext(), c.Params("id"), f, fh.Filename, ct, fh.Size)
		return respond(c, resp, err)
	}
}

// AttachmentURL godoc
// @Summary Presigned download URL for a document's attachment
// @Tags attachments
// @Produce json
// @Param entity path string true "Collection"
// @Param id path string true "Document ID"
// @Success 200 {object} service.Response
// @Failure 404 {object} service.Response
// @Router /api/{entity}/attachment/{id} [get]
func AttachmentURL(svc AttachmentAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.URL(c.UserContext(), c.Params("id"))
		return respond(c, resp, err)
	}
}
