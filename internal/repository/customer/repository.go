package customer

import (
	"context"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// CreateInput carries the fields settable at registration time.
type CreateInput struct {
	PhoneNumber string
	Nickname    string
	Birthday    *time.Time
}

// Changes is a partial update; nil fields keep their stored value.
type Changes struct {
	Nickname      *string
	Birthday      *time.Time
	CurrentStamps *int
	TotalStamps   *int
	Coupons       *int
	VisitCount    *int
	LastVisit     *time.Time
}

// Repository persists and fetches customers. ConditionalUpdate is the
// only write path for counters: it succeeds only when the caller's
// version matches the stored row, so racing writers cannot both observe
// the same stamp count and both act on it.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	ListWithBirthday(ctx context.Context) ([]domain.Customer, error)
	ConditionalUpdate(ctx context.Context, id string, ch Changes, expectedVersion int64) (*domain.Customer, error)
	SoftDelete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
