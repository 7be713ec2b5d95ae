package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Config holds connection settings for the Postgres document store.
type Config struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// PostgresStore persists processed documents in a jsonb column.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS processed_documents (
	id          UUID PRIMARY KEY,
	file_name   TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL,
	result      JSONB NOT NULL
)`

// OpenPostgres creates the pgx pool, verifies connectivity, and ensures
// the schema exists.
func OpenPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "dsn", cfg.DSN)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "docprocessor"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("successfully connected to database")
	return &PostgresStore{pool: pool, log: logger}, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc *entity.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.UploadedAt = time.Now().UTC()

	result, err := json.Marshal(doc.Result)
	if err != nil {
		return fmt.Errorf("%w: encode result: %v", common.ErrPersistence, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO processed_documents (id, file_name, uploaded_at, result)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET file_name = EXCLUDED.file_name,
		    uploaded_at = EXCLUDED.uploaded_at,
		    result = EXCLUDED.result`,
		doc.ID, doc.FileName, doc.UploadedAt, result)
	if err != nil {
		s.log.Error("store.save.failed", "document_id", doc.ID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	s.log.Info("store.save.ok", "document_id", doc.ID, "file_name", doc.FileName)
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents WHERE id = $1`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return doc, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*entity.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents
		ORDER BY uploaded_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return docs, nil
}

func (s *PostgresStore) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	docs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildDashboardStats(docs), nil
}

func (s *PostgresStore) AccuracyTrend(ctx context.Context, limit int) ([]entity.AccuracyPoint, error) {
	if limit <= 0 {
		limit = accuracyTrendLimit
	}
	docs, err := s.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return buildAccuracyTrend(docs), nil
}

func (s *PostgresStore) ExtractedMetrics(ctx context.Context) (*entity.ExtractedMetrics, error) {
	docs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildExtractedMetrics(docs), nil
}

func (s *PostgresStore) listAll(ctx context.Context) ([]*entity.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return docs, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.log.Info("closing database connections")
	s.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var doc entity.Document
	var result []byte
	if err := row.Scan(&doc.ID, &doc.FileName, &doc.UploadedAt, &result); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &doc.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &doc, nil
}
