package notice

import (
	"context"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// Input carries the writable notice fields.
type Input struct {
	Title       string
	Content     string
	IsPinned    bool
	IsPublished bool
	ScheduledAt *time.Time
}

// Repository persists notices. ListVisible evaluates the scheduling
// predicate server-side so no client timer is involved in publication.
type Repository interface {
	Create(ctx context.Context, in Input) (*domain.Notice, error)
	Update(ctx context.Context, id string, in Input) (*domain.Notice, error)
	GetByID(ctx context.Context, id string) (*domain.Notice, error)
	ListAll(ctx context.Context) ([]domain.Notice, error)
	ListVisible(ctx context.Context, now time.Time) ([]domain.Notice, error)
	Delete(ctx context.Context, id string) error
}
