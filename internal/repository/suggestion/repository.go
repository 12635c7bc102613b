package suggestion

import (
	"context"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// CreateInput carries the customer-submitted fields.
type CreateInput struct {
	Content     string
	PhoneNumber string
	Nickname    string
}

// Repository persists store-improvement suggestions.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Suggestion, error)
	GetByID(ctx context.Context, id string) (*domain.Suggestion, error)
	List(ctx context.Context) ([]domain.Suggestion, error)
	// Respond stores the admin reply on the record and marks it answered.
	Respond(ctx context.Context, id, response string) (*domain.Suggestion, error)
	Delete(ctx context.Context, id string) error
}
