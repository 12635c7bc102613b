// Package notice manages store announcements. Deferred publication is a
// column plus a read-time predicate, not a client-side timer: a notice
// scheduled for the future simply does not appear in the public listing
// until its time has passed.
package notice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	noticerepo "github.com/iseungsang01/tarot-manager-app/internal/repository/notice"
)

type repo interface {
	Create(ctx context.Context, in noticerepo.Input) (*domain.Notice, error)
	Update(ctx context.Context, id string, in noticerepo.Input) (*domain.Notice, error)
	GetByID(ctx context.Context, id string) (*domain.Notice, error)
	ListAll(ctx context.Context) ([]domain.Notice, error)
	ListVisible(ctx context.Context, now time.Time) ([]domain.Notice, error)
	Delete(ctx context.Context, id string) error
}

// Service manages notices.
type Service struct {
	repo repo
	now  func() time.Time
}

// New creates a Service.
func New(r repo) *Service {
	return &Service{repo: r, now: time.Now}
}

// Input mirrors the notice form.
type Input struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsPinned    bool       `json:"isPinned"`
	IsPublished bool       `json:"isPublished"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content required", domain.ErrInvalidInput)
	}
	return nil
}

// Create stores a new notice.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Notice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, noticerepo.Input(in))
}

// Update replaces a notice's fields, including its schedule.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Notice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, noticerepo.Input(in))
}

// ListPublic returns notices visible to customers right now.
func (s *Service) ListPublic(ctx context.Context) ([]domain.Notice, error) {
	return s.repo.ListVisible(ctx, s.now())
}

// ListAll returns every notice for the admin screen.
func (s *Service) ListAll(ctx context.Context) ([]domain.Notice, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes a notice.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
