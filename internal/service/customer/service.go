// Package customer handles registration, lookup, and the admin roster.
package customer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
)

const defaultNickname = "고객"

type repo interface {
	Create(ctx context.Context, in customerrepo.CreateInput) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	ConditionalUpdate(ctx context.Context, id string, ch customerrepo.Changes, expectedVersion int64) (*domain.Customer, error)
	SoftDelete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Service handles customer lookup and registration flows.
type Service struct {
	repo repo
}

// New creates a Service.
func New(r repo) *Service {
	return &Service{repo: r}
}

// LookupInput mirrors the lookup form: phone required, the rest optional.
type LookupInput struct {
	PhoneNumber string     `json:"phoneNumber"`
	Nickname    string     `json:"nickname"`
	Birthday    *time.Time `json:"birthday"`
}

// LookupResult carries the customer plus whether this call registered them.
type LookupResult struct {
	Customer   domain.Customer `json:"customer"`
	Registered bool            `json:"registered"`
}

// LookupOrRegister finds the customer by phone, creating them on first
// visit. When nickname or birthday are supplied and differ from the stored
// values, the profile is updated in place.
func (s *Service) LookupOrRegister(ctx context.Context, in LookupInput) (*LookupResult, error) {
	phone, err := CanonicalPhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByPhone(ctx, phone)
	if errors.Is(err, domain.ErrNotFound) {
		nickname := strings.TrimSpace(in.Nickname)
		if nickname == "" {
			nickname = defaultNickname
		}
		created, err := s.repo.Create(ctx, customerrepo.CreateInput{
			PhoneNumber: phone,
			Nickname:    nickname,
			Birthday:    in.Birthday,
		})
		if err != nil {
			return nil, err
		}
		return &LookupResult{Customer: *created, Registered: true}, nil
	}
	if err != nil {
		return nil, err
	}

	ch := customerrepo.Changes{}
	if nickname := strings.TrimSpace(in.Nickname); nickname != "" && nickname != existing.Nickname {
		ch.Nickname = &nickname
	}
	if in.Birthday != nil && (existing.Birthday == nil || !existing.Birthday.Equal(*in.Birthday)) {
		ch.Birthday = in.Birthday
	}
	if ch.Nickname == nil && ch.Birthday == nil {
		return &LookupResult{Customer: *existing}, nil
	}

	updated, err := s.repo.ConditionalUpdate(ctx, existing.ID, ch, existing.Version)
	if errors.Is(err, domain.ErrConflict) {
		// profile edits are idempotent; reread and report the fresh row
		fresh, rerr := s.repo.GetByID(ctx, existing.ID)
		if rerr != nil {
			return nil, rerr
		}
		return &LookupResult{Customer: *fresh}, nil
	}
	if err != nil {
		return nil, err
	}
	return &LookupResult{Customer: *updated}, nil
}

// Get fetches one customer by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// RosterEntry decorates a customer with a visit-frequency estimate.
type RosterEntry struct {
	domain.Customer
	VisitEvery string `json:"visitEvery,omitempty"`
}

// Roster is the admin customer listing with aggregate stats.
type Roster struct {
	Customers    []RosterEntry `json:"customers"`
	Total        int           `json:"total"`
	TotalStamps  int           `json:"totalStamps"`
	TotalCoupons int           `json:"totalCoupons"`
}

// ListRoster returns all active customers ordered by recency, with totals.
func (s *Service) ListRoster(ctx context.Context) (*Roster, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	roster := &Roster{Customers: make([]RosterEntry, 0, len(customers))}
	for _, c := range customers {
		roster.Total++
		roster.TotalStamps += c.TotalStamps
		roster.TotalCoupons += c.Coupons
		roster.Customers = append(roster.Customers, RosterEntry{
			Customer:   c,
			VisitEvery: visitFrequency(c.VisitCount, c.FirstVisit, c.LastVisit),
		})
	}
	return roster, nil
}

// Delete soft-deletes one customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// ResetAll wipes every customer record. Coupon and visit history go with
// them via cascading deletes.
func (s *Service) ResetAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// visitFrequency renders the average gap between visits as rough prose.
func visitFrequency(visitCount int, first, last time.Time) string {
	if visitCount < 2 {
		return ""
	}
	days := last.Sub(first).Hours() / 24
	avg := days / float64(visitCount-1)
	switch {
	case avg < 1:
		return "several per day"
	case avg < 7:
		return prose(avg, "day")
	case avg < 30:
		return prose(avg/7, "week")
	default:
		return prose(avg/30, "month")
	}
}

func prose(n float64, unit string) string {
	rounded := int(n + 0.5)
	if rounded <= 1 {
		return "about every " + unit
	}
	return "about every " + strconv.Itoa(rounded) + " " + unit + "s"
}
