// Package vote manages customer polls and ballot casting. Every ballot is
// a durable row; tallies are always derived by aggregation.
package vote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	voterepo "github.com/iseungsang01/tarot-manager-app/internal/repository/vote"
	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
)

type repo interface {
	Create(ctx context.Context, in voterepo.Input) (*domain.Vote, error)
	Update(ctx context.Context, id string, in voterepo.Input) (*domain.Vote, error)
	GetByID(ctx context.Context, id string) (*domain.Vote, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Vote, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Vote, error)
	Delete(ctx context.Context, id string) error
	InsertBallots(ctx context.Context, voteID, phoneNumber string, optionIDs []int) error
	HasBallot(ctx context.Context, voteID, phoneNumber string) (bool, error)
	Counts(ctx context.Context, voteID string) (map[int]int, int, error)
}

// Service manages votes.
type Service struct {
	repo repo
	now  func() time.Time
}

// New creates a Service.
func New(r repo) *Service {
	return &Service{repo: r, now: time.Now}
}

// Input mirrors the vote creation form; options arrive as plain strings.
type Input struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Options       []string   `json:"options"`
	EndsAt        *time.Time `json:"endsAt"`
	AllowMultiple bool       `json:"allowMultiple"`
	MaxSelections int        `json:"maxSelections"`
	IsActive      bool       `json:"isActive"`
}

func (in Input) toRepo() (voterepo.Input, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return voterepo.Input{}, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	options := make([]domain.VoteOption, 0, len(in.Options))
	for _, text := range in.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, domain.VoteOption{ID: len(options) + 1, Text: text})
	}
	if len(options) < 2 {
		return voterepo.Input{}, fmt.Errorf("%w: at least two options required", domain.ErrInvalidInput)
	}
	maxSel := 1
	if in.AllowMultiple {
		maxSel = in.MaxSelections
		if maxSel < 2 {
			maxSel = 2
		}
		if maxSel > len(options) {
			maxSel = len(options)
		}
	}
	return voterepo.Input{
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Options:       options,
		EndsAt:        in.EndsAt,
		AllowMultiple: in.AllowMultiple,
		MaxSelections: maxSel,
		IsActive:      in.IsActive,
	}, nil
}

// Create stores a new vote.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Vote, error) {
	repoIn, err := in.toRepo()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, repoIn)
}

// Update replaces a vote's definition.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Vote, error) {
	repoIn, err := in.toRepo()
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, repoIn)
}

// ListActive returns votes currently accepting ballots.
func (s *Service) ListActive(ctx context.Context) ([]domain.Vote, error) {
	return s.repo.List(ctx, true)
}

// ListAll returns every vote for the admin screen.
func (s *Service) ListAll(ctx context.Context) ([]domain.Vote, error) {
	return s.repo.List(ctx, false)
}

// SetActive opens or closes a vote.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*domain.Vote, error) {
	return s.repo.SetActive(ctx, id, active)
}

// Delete removes a vote and, via cascade, its ballots.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Cast records one customer's ballot. A closed or ended vote, an unknown
// option, too many selections, or a repeat ballot are all rejected.
func (s *Service) Cast(ctx context.Context, voteID, phoneNumber string, optionIDs []int) error {
	phone, err := customersvc.CanonicalPhone(phoneNumber)
	if err != nil {
		return err
	}
	if len(optionIDs) == 0 {
		return fmt.Errorf("%w: no option selected", domain.ErrInvalidInput)
	}

	v, err := s.repo.GetByID(ctx, voteID)
	if err != nil {
		return err
	}
	if !v.OpenAt(s.now()) {
		return fmt.Errorf("%w: vote is closed", domain.ErrNotEligible)
	}
	if len(optionIDs) > v.MaxSelections {
		return fmt.Errorf("%w: at most %d selections allowed", domain.ErrInvalidInput, v.MaxSelections)
	}
	seen := make(map[int]bool, len(optionIDs))
	for _, id := range optionIDs {
		if !v.HasOption(id) {
			return fmt.Errorf("%w: unknown option %d", domain.ErrInvalidInput, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate option %d", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	voted, err := s.repo.HasBallot(ctx, voteID, phone)
	if err != nil {
		return err
	}
	if voted {
		return domain.ErrAlreadyExists
	}

	return s.repo.InsertBallots(ctx, voteID, phone, optionIDs)
}

// Results aggregates ballots for one vote.
func (s *Service) Results(ctx context.Context, voteID string) (*domain.VoteResult, error) {
	v, err := s.repo.GetByID(ctx, voteID)
	if err != nil {
		return nil, err
	}
	counts, total, err := s.repo.Counts(ctx, voteID)
	if err != nil {
		return nil, err
	}

	options := make([]domain.VoteOptionCount, 0, len(v.Options))
	for _, opt := range v.Options {
		options = append(options, domain.VoteOptionCount{Option: opt, Count: counts[opt.ID]})
	}
	return &domain.VoteResult{
		Vote:         *v,
		TotalBallots: total,
		Counts:       counts,
		Options:      options,
	}, nil
}
