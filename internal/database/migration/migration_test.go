package migration

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billingapi/internal/model"
)

func expectTableChecks(mock sqlmock.Sqlmock, exists func(table string) bool) {
	for _, c := range model.Collections() {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT to_regclass($1) IS NOT NULL`)).
			WithArgs("public." + c.Table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists(c.Table)))
	}
}

func TestSteps(t *testing.T) {
	steps := Steps()

	names := make(map[string]bool, len(steps))
	for _, s := range steps {
		assert.False(t, names[s.Name], "duplicate step %s", s.Name)
		names[s.Name] = true
		assert.Contains(t, s.SQL, "IF NOT EXISTS")
	}
	for _, c := range model.Collections() {
		assert.True(t, names["create_table_"+c.Table], c.Table)
	}
	assert.Equal(t, "create_extension_uuid_ossp", steps[0].Name)
}

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when every table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectTableChecks(mock, func(string) bool { return true })

		assert.NoError(t, EnsureMigrated(ctx, db, "db.internal"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step when a table is missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectTableChecks(mock, func(table string) bool { return table != model.Settings.Table })
		for _, s := range Steps() {
			mock.ExpectExec(regexp.QuoteMeta(strings.Fields(s.SQL)[0])).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		assert.NoError(t, EnsureMigrated(ctx, db, "db.internal"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectTableChecks(mock, func(string) bool { return false })
		mock.ExpectExec("CREATE EXTENSION").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, "db.internal")
		assert.ErrorContains(t, err, "migration step create_extension_uuid_ossp failed")
	})

	t.Run("check failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("to_regclass").WillReturnError(errors.New("connection refused"))

		assert.Error(t, EnsureMigrated(ctx, db, "db.internal"))
	})
}
