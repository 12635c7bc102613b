package vote

import (
	"context"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// Input carries the writable vote fields.
type Input struct {
	Title         string
	Description   string
	Options       []domain.VoteOption
	EndsAt        *time.Time
	AllowMultiple bool
	MaxSelections int
	IsActive      bool
}

// Repository persists votes and their ballots. Ballots are individual
// rows; tallies come from Counts, never from stored counters.
type Repository interface {
	Create(ctx context.Context, in Input) (*domain.Vote, error)
	Update(ctx context.Context, id string, in Input) (*domain.Vote, error)
	GetByID(ctx context.Context, id string) (*domain.Vote, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Vote, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Vote, error)
	Delete(ctx context.Context, id string) error
	// InsertBallots records one row per selected option inside a single
	// transaction; a duplicate (vote, phone, option) aborts the whole cast.
	InsertBallots(ctx context.Context, voteID, phoneNumber string, optionIDs []int) error
	HasBallot(ctx context.Context, voteID, phoneNumber string) (bool, error)
	Counts(ctx context.Context, voteID string) (map[int]int, int, error)
}
