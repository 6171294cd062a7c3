package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	require.Equal(t, 3, ups)
	require.Equal(t, ups, downs)

	users, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(users), "WHERE NOT deleted")
}

func TestMigrationSteps(t *testing.T) {
	okOpen := func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	okDriver := func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	okSource := func(fs.FS, string) (src.Driver, error) { return nil, nil }
	withMigrator := func(m fakeMigrator) func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
		return func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
	}

	cases := []struct {
		name    string
		setup   func()
		upErr   bool
		downErr bool
	}{
		{
			name:    "open fails",
			setup:   func() { sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") } },
			upErr:   true,
			downErr: true,
		},
		{
			name: "driver fails",
			setup: func() {
				sqlOpenDB = okOpen
				postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
			},
			upErr:   true,
			downErr: true,
		},
		{
			name: "source fails",
			setup: func() {
				sqlOpenDB, postgresWithInstanceFn = okOpen, okDriver
				iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
			},
			upErr:   true,
			downErr: true,
		},
		{
			name: "migrate init fails",
			setup: func() {
				sqlOpenDB, postgresWithInstanceFn, iofsNewFn = okOpen, okDriver, okSource
				migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
					return nil, errors.New("mig")
				}
			},
			upErr:   true,
			downErr: true,
		},
		{
			name: "no change is fine",
			setup: func() {
				sqlOpenDB, postgresWithInstanceFn, iofsNewFn = okOpen, okDriver, okSource
				migrateNewWithInstance = withMigrator(fakeMigrator{upErr: migrate.ErrNoChange, downErr: migrate.ErrNoChange})
			},
		},
		{
			name: "step errors surface",
			setup: func() {
				sqlOpenDB, postgresWithInstanceFn, iofsNewFn = okOpen, okDriver, okSource
				migrateNewWithInstance = withMigrator(fakeMigrator{upErr: errors.New("u"), downErr: errors.New("d")})
			},
			upErr:   true,
			downErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			tc.setup()
			if tc.upErr {
				require.Error(t, RunMigrations("url"))
			} else {
				require.NoError(t, RunMigrations("url"))
			}
			if tc.downErr {
				require.Error(t, RollbackAll("url"))
			} else {
				require.NoError(t, RollbackAll("url"))
			}
		})
	}
}
