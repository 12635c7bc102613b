// Package suggestion handles store-improvement requests. Admin replies
// persist on the record itself, never in client-side storage.
package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	suggestionrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/suggestion"
	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
)

type repo interface {
	Create(ctx context.Context, in suggestionrepo.CreateInput) (*domain.Suggestion, error)
	List(ctx context.Context) ([]domain.Suggestion, error)
	Respond(ctx context.Context, id, response string) (*domain.Suggestion, error)
	Delete(ctx context.Context, id string) error
}

// Service manages suggestions.
type Service struct {
	repo repo
}

// New creates a Service.
func New(r repo) *Service {
	return &Service{repo: r}
}

// SubmitInput mirrors the suggestion form; contact fields are optional.
type SubmitInput struct {
	Content     string `json:"content"`
	PhoneNumber string `json:"phoneNumber"`
	Nickname    string `json:"nickname"`
}

// Submit stores a new suggestion.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Suggestion, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content required", domain.ErrInvalidInput)
	}
	phone := ""
	if strings.TrimSpace(in.PhoneNumber) != "" {
		normalized, err := customersvc.CanonicalPhone(in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		phone = normalized
	}
	return s.repo.Create(ctx, suggestionrepo.CreateInput{
		Content:     content,
		PhoneNumber: phone,
		Nickname:    strings.TrimSpace(in.Nickname),
	})
}

// List returns all suggestions, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Suggestion, error) {
	return s.repo.List(ctx)
}

// Respond records the admin reply and marks the suggestion answered.
func (s *Service) Respond(ctx context.Context, id, response string) (*domain.Suggestion, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, fmt.Errorf("%w: response required", domain.ErrInvalidInput)
	}
	return s.repo.Respond(ctx, id, response)
}

// Delete removes a suggestion.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
