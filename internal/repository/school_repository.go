package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
)

type SchoolRepository interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, s domain.NewSchool) (int64, error)
	List(ctx context.Context) ([]domain.School, error)
	Ping(ctx context.Context) error
}

type schoolRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewSchoolRepository(db *sqlx.DB, log *zap.Logger) SchoolRepository {
	return &schoolRepository{db: db, log: log}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS schools (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	city       TEXT NOT NULL,
	state      TEXT NOT NULL,
	contact    VARCHAR(10) NOT NULL,
	image      TEXT NOT NULL,
	email_id   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schools (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	city       TEXT NOT NULL,
	state      TEXT NOT NULL,
	contact    TEXT NOT NULL,
	image      TEXT NOT NULL,
	email_id   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

func (r *schoolRepository) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if r.db.DriverName() == "postgres" {
		schema = postgresSchema
	}
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *schoolRepository) Create(ctx context.Context, s domain.NewSchool) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO schools (name, address, city, state, contact, image, email_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		s.Name, s.Address, s.City, s.State, s.Contact, s.Image, s.EmailID, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		r.log.Error("Failed to insert school", zap.String("name", s.Name), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (r *schoolRepository) List(ctx context.Context) ([]domain.School, error) {
	schools := []domain.School{}
	err := r.db.SelectContext(ctx, &schools, `
		SELECT id, name, address, city, state, contact, image, email_id, created_at
		FROM schools
		ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to fetch schools", zap.Error(err))
		return nil, err
	}
	return schools, nil
}

func (r *schoolRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
