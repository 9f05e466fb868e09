// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *model.Product) error {
	return queryCreateProduct(ctx, s.db, p)
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return queryGetProduct(ctx, s.db, id)
}

func (s *PostgresStore) ListProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, int, error) {
	return queryListProducts(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	return queryUpdateProduct(ctx, s.db, p)
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	return queryDeleteProduct(ctx, s.db, id)
}

func (s *PostgresStore) CreateFarm(ctx context.Context, f *model.Farm) error {
	return queryCreateFarm(ctx, s.db, f)
}

func (s *PostgresStore) GetFarm(ctx context.Context, id string) (*model.Farm, error) {
	return queryGetFarm(ctx, s.db, id)
}

func (s *PostgresStore) ListFarms(ctx context.Context) ([]*model.Farm, error) {
	return queryListFarms(ctx, s.db)
}

func (s *PostgresStore) UpdateFarm(ctx context.Context, f *model.Farm) error {
	return queryUpdateFarm(ctx, s.db, f)
}

func (s *PostgresStore) DeleteFarm(ctx context.Context, id string) error {
	return queryDeleteFarm(ctx, s.db, id)
}
