package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteapi/internal/config"
)

func archiveDB(mutate func(*config.DatabaseConfig)) config.DatabaseConfig {
	c := config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "quotes",
		Password: "secret",
		Name:     "quoteapi",
		SSLMode:  "disable",
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func TestBuildPostgresDSN(t *testing.T) {
	cases := map[string]struct {
		cfg  config.DatabaseConfig
		want string
	}{
		"password and sslmode": {
			cfg:  archiveDB(nil),
			want: "postgres://quotes:secret@db:5432/quoteapi?sslmode=disable",
		},
		"no password": {
			cfg:  archiveDB(func(c *config.DatabaseConfig) { c.Password = ""; c.SSLMode = "require" }),
			want: "postgres://quotes@db:5432/quoteapi?sslmode=require",
		},
		"no query params": {
			cfg:  archiveDB(func(c *config.DatabaseConfig) { c.Password = ""; c.SSLMode = "" }),
			want: "postgres://quotes@db:5432/quoteapi",
		},
		"escaped password and connect timeout": {
			cfg:  archiveDB(func(c *config.DatabaseConfig) { c.Password = "p@ss word"; c.ConnectTimeoutSec = 3 }),
			want: "postgres://quotes:p%40ss%20word@db:5432/quoteapi?connect_timeout=3&sslmode=disable",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := BuildPostgresDSN(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	missing := map[string]func(*config.DatabaseConfig){
		"host": func(c *config.DatabaseConfig) { c.Host = "" },
		"port": func(c *config.DatabaseConfig) { c.Port = "" },
		"user": func(c *config.DatabaseConfig) { c.User = "" },
		"name": func(c *config.DatabaseConfig) { c.Name = "" },
	}
	for field, mutate := range missing {
		t.Run("missing "+field, func(t *testing.T) {
			_, err := BuildPostgresDSN(archiveDB(mutate))
			assert.Error(t, err)
		})
	}
}

// stubOpen swaps sqlOpen for the duration of the test and records the DSN it was given.
func stubOpen(t *testing.T, db *sql.DB, err error) *string {
	t.Helper()
	var gotDSN string
	orig := sqlOpen
	sqlOpen = func(_, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
	return &gotDSN
}

func TestNewPostgres(t *testing.T) {
	pooled := archiveDB(func(c *config.DatabaseConfig) {
		c.MaxOpenConns = 10
		c.MaxIdleConns = 5
		c.ConnMaxLifetimeSec = 300
		c.ConnectTimeoutSec = 2
	})

	t.Run("opens and pings", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dsn := stubOpen(t, db, nil)
		mock.ExpectPing()

		got, err := NewPostgres(context.Background(), pooled)

		require.NoError(t, err)
		assert.Same(t, db, got)
		assert.Equal(t, 10, got.Stats().MaxOpenConnections)
		assert.Contains(t, *dsn, "connect_timeout=2")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		got, err := NewPostgres(context.Background(), pooled)

		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, got)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		mock.ExpectClose()

		got, err := NewPostgres(context.Background(), pooled)

		assert.ErrorContains(t, err, "db ping: ping failed")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid config never opens", func(t *testing.T) {
		dsn := stubOpen(t, nil, errors.New("must not be called"))

		got, err := NewPostgres(context.Background(), config.DatabaseConfig{})

		assert.Error(t, err)
		assert.Nil(t, got)
		assert.Empty(t, *dsn)
	})
}
