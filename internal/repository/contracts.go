package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// DocumentStore is the persistence collaborator: it accepts the full
// composite result as one document and stamps the upload timestamp on
// save. Store failures always surface to the caller.
type DocumentStore interface {
	Save(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Document, error)
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
	AccuracyTrend(ctx context.Context, limit int) ([]entity.AccuracyPoint, error)
	ExtractedMetrics(ctx context.Context) (*entity.ExtractedMetrics, error)
	HealthCheck(ctx context.Context) error
	Close() error
}
