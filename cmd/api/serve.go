package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"billingapi/docs"
	"billingapi/internal/database"
	"billingapi/internal/database/migration"
	"billingapi/internal/http/handler"
	"billingapi/internal/http/middleware"
	"billingapi/internal/logger"
	"billingapi/internal/model"
	"billingapi/internal/money"
	"billingapi/internal/otel"
	"billingapi/internal/repository/postgres"
	"billingapi/internal/service"
	"billingapi/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

Required environment variables:
  DB_HOST, DB_PORT, DB_USER, DB_NAME - PostgreSQL connection
  MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_BUCKET - attachment storage`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.WithComponent("server")

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
			return err
		}
	}

	objects, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "billing"),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := newApp(db, objects, reg, promMW)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Str("version", version).Msg("listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newApp(db *sql.DB, objects storage.Storage, reg *prometheus.Registry, promMW *middleware.PrometheusMiddleware) *fiber.App {
	invoices := postgres.NewDocumentPostgres[model.Invoice](db, model.Invoices)
	payments := postgres.NewDocumentPostgres[model.Payment](db, model.Payments)
	clients := postgres.NewDocumentPostgres[model.Client](db, model.Clients)
	modes := postgres.NewDocumentPostgres[model.PaymentMode](db, model.PaymentModes)
	settings := postgres.NewDocumentPostgres[model.Setting](db, model.Settings)

	reconcile := service.NewPaymentService(
		payments,
		invoices,
		postgres.NewTxManager(db),
		money.New(cfg.Money.Precision),
		service.NewMetrics(reg),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handler.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMW.Handler())

	handler.RegisterRoutes(app, handler.Deps{
		DB:       db,
		Gatherer: reg,
		Payments: reconcile,
		Resources: []handler.Resource{
			resource[model.Invoice](model.Invoices, invoices, objects),
			resource[model.Payment](model.Payments, payments, objects),
			resource[model.Client](model.Clients, clients, objects),
			resource[model.PaymentMode](model.PaymentModes, modes, objects),
			resource[model.Setting](model.Settings, settings, objects),
		},
	})

	// Swagger UI with the host and scheme the client used.
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app
}

func resource[T service.Attachable](c model.Collection, store *postgres.DocumentPostgres[T], objects storage.Storage) handler.Resource {
	return handler.Resource{
		Entity:      c.Entity,
		Service:     service.NewResourceService[T](store),
		Attachments: service.NewAttachmentService[T](c, store, objects),
	}
}
