package migration

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestEnsureMigrated(t *testing.T) {
	t.Run("skips when schema exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WithArgs("public.analyses").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		var buf bytes.Buffer
		require.NoError(t, EnsureMigrated(context.Background(), db, newLogger(&buf), "db"))
		assert.Contains(t, buf.String(), "db_migration_skip")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_analyses_created_at").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_analyses_mode").WillReturnResult(sqlmock.NewResult(0, 0))

		var buf bytes.Buffer
		require.NoError(t, EnsureMigrated(context.Background(), db, newLogger(&buf), "db"))
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at failing step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").WillReturnError(errors.New("permission denied"))

		var buf bytes.Buffer
		err = EnsureMigrated(context.Background(), db, newLogger(&buf), "db")
		assert.ErrorContains(t, err, "migration step create_table_analyses")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel check error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("conn refused"))

		var buf bytes.Buffer
		err = EnsureMigrated(context.Background(), db, newLogger(&buf), "db")
		assert.ErrorContains(t, err, "check sentinel table")
	})
}
