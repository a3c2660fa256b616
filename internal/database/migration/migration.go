// Package migration creates the document tables, one JSONB table per collection.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"billingapi/internal/logger"
	"billingapi/internal/model"
)

// Step is one idempotent DDL statement.
type Step struct {
	Name string
	SQL  string
}

// extraIndexes are expression indexes for fields the API filters on.
var extraIndexes = map[string][]Step{
	model.Invoices.Table: {{
		Name: "create_index_invoices_payment_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoices_payment_status ON invoices ((data->>'paymentStatus')) WHERE removed = false;`,
	}},
	model.Payments.Table: {{
		Name: "create_index_payments_invoice",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payments_invoice ON payments ((data->>'invoice')) WHERE removed = false;`,
	}},
}

// Steps returns the schema for every collection in model.Collections.
func Steps() []Step {
	steps := []Step{{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}}

	for _, c := range model.Collections() {
		t := c.Table
		steps = append(steps,
			Step{
				Name: "create_table_" + t,
				SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  removed    BOOLEAN     NOT NULL DEFAULT false,
  data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`, t),
			},
			Step{
				Name: "create_index_" + t + "_created_at",
				SQL:  fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at DESC, id DESC) WHERE removed = false;`, t, t),
			},
		)
		steps = append(steps, extraIndexes[t]...)
	}
	return steps
}

// EnsureMigrated creates missing collection tables. It does nothing when all of them exist.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	log := logger.WithComponent("database").With().Str("db_host", dbHost).Logger()
	start := time.Now()

	log.Info().Str("event", "db_migration_check").Msg("checking schema")

	missing := 0
	for _, c := range model.Collections() {
		var exists bool
		if err := db.QueryRowContext(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+c.Table).Scan(&exists); err != nil {
			log.Error().Err(err).Str("event", "db_migration_failed").Msg("failed to check table")
			return fmt.Errorf("check table %s: %w", c.Table, err)
		}
		if !exists {
			missing++
		}
	}

	if missing == 0 {
		log.Info().Str("event", "db_migration_skip").Dur("duration", time.Since(start)).Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Int("missing_tables", missing).Msg("migrating")

	for _, step := range Steps() {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("migration_step", step.Name).
				Dur("step_duration", time.Since(stepStart)).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug().Str("event", "db_migration_step").Str("migration_step", step.Name).Dur("step_duration", time.Since(stepStart)).Msg("step applied")
	}

	log.Info().Str("event", "db_migration_success").Dur("duration", time.Since(start)).Msg("schema migrated")
	return nil
}
