package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// SQLiteStore is the local/dev document store. Same contract as Postgres,
// one file on disk, no server.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS processed_documents (
	id          TEXT PRIMARY KEY,
	file_name   TEXT NOT NULL,
	uploaded_at TEXT NOT NULL,
	result      TEXT NOT NULL
)`

// OpenSQLite opens (or creates) the database file with WAL mode for
// better concurrency.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("sqlite store ready", "path", path)
	return &SQLiteStore{db: db, log: logger}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc *entity.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.UploadedAt = time.Now().UTC()

	result, err := json.Marshal(doc.Result)
	if err != nil {
		return fmt.Errorf("%w: encode result: %v", common.ErrPersistence, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO processed_documents (id, file_name, uploaded_at, result)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET file_name = excluded.file_name,
		    uploaded_at = excluded.uploaded_at,
		    result = excluded.result`,
		doc.ID.String(), doc.FileName, doc.UploadedAt.Format(time.RFC3339Nano), string(result))
	if err != nil {
		s.log.Error("store.save.failed", "document_id", doc.ID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	s.log.Info("store.save.ok", "document_id", doc.ID, "file_name", doc.FileName)
	return nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents WHERE id = ?`, id.String())

	doc, err := scanSQLiteDocument(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return doc, nil
}

func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*entity.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents
		ORDER BY uploaded_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanSQLiteDocument(rows.Scan)
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

func (s *SQLiteStore) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	docs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildDashboardStats(docs), nil
}

func (s *SQLiteStore) AccuracyTrend(ctx context.Context, limit int) ([]entity.AccuracyPoint, error) {
	if limit <= 0 {
		limit = accuracyTrendLimit
	}
	docs, err := s.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return buildAccuracyTrend(docs), nil
}

func (s *SQLiteStore) ExtractedMetrics(ctx context.Context) (*entity.ExtractedMetrics, error) {
	docs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildExtractedMetrics(docs), nil
}

func (s *SQLiteStore) listAll(ctx context.Context) ([]*entity.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, uploaded_at, result
		FROM processed_documents`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanSQLiteDocument(rows.Scan)
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

func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanSQLiteDocument(scan func(dest ...any) error) (*entity.Document, error) {
	var (
		doc        entity.Document
		id         string
		uploadedAt string
		result     string
	)
	if err := scan(&id, &doc.FileName, &uploadedAt, &result); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	doc.ID = parsed
	ts, err := time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("parse uploaded_at: %w", err)
	}
	doc.UploadedAt = ts
	if err := json.Unmarshal([]byte(result), &doc.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &doc, nil
}
