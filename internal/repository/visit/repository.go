package visit

import (
	"context"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// Repository is the append-only visit log.
type Repository interface {
	Insert(ctx context.Context, customerID string, stampsAdded int) (*domain.Visit, error)
	ListRecent(ctx context.Context, customerID string, limit int) ([]domain.Visit, error)
}
