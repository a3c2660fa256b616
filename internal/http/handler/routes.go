package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billingapi/internal/model"
	"billingapi/internal/service"
)

// Resource binds one collection's services to /api/{Entity}.
type Resource struct {
	Entity      string
	Service     ResourceAPI
	Attachments AttachmentAPI
}

// Deps are the dependencies RegisterRoutes wires into handlers.
type Deps struct {
	DB        *sql.DB
	Gatherer  prometheus.Gatherer
	Payments  service.PaymentService
	Resources []Resource
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Payment updates go through reconciliation; every other update is a plain merge-patch.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	for _, r := range d.Resources {
		g := api.Group("/" + r.Entity)

		g.Get("/read/:id", ReadResource(r.Service))
		if r.Entity == model.Payments.Entity && d.Payments != nil {
			g.Patch("/update/:id", UpdatePayment(d.Payments))
		} else {
			g.Patch("/update/:id", UpdateResource(r.Service))
		}
		g.Get("/search", SearchResource(r.Service))
		g.Get("/summary", SummaryResource(r.Service))

		if r.Attachments != nil {
			g.Post("/upload/:id", UploadAttachment(r.Attachments))
			g.Get("/attachment/:id", AttachmentURL(r.Attachments))
		}
	}
}

// HealthCheck reports healthy when the database answers a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
