// Package stamp holds the stamp-card ledger: the single authoritative
// place that decides stamp math and coupon issuance. Counters are only
// ever written through version-guarded updates, so concurrent callers
// cannot both observe the same count and both act on it.
package stamp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
)

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ConditionalUpdate(ctx context.Context, id string, ch customerrepo.Changes, expectedVersion int64) (*domain.Customer, error)
}

type couponRepo interface {
	IssueWithReset(ctx context.Context, in couponrepo.CreateInput, expectedVersion int64, newCouponCount int) (*domain.Coupon, *domain.Customer, error)
	FindPendingStamp(ctx context.Context, customerID string, since time.Time) (*domain.Coupon, error)
}

type visitRepo interface {
	Insert(ctx context.Context, customerID string, stampsAdded int) (*domain.Visit, error)
}

// Service is the stamp ledger.
type Service struct {
	customers customerRepo
	coupons   couponRepo
	visits    visitRepo
	validDays int
	now       func() time.Time
}

// New creates a Service. validDays is the stamp-coupon validity window.
func New(customers customerRepo, coupons couponRepo, visits visitRepo, validDays int) *Service {
	if validDays <= 0 {
		validDays = 7
	}
	return &Service{
		customers: customers,
		coupons:   coupons,
		visits:    visits,
		validDays: validDays,
		now:       time.Now,
	}
}

// AddResult reports the outcome of one stamp-adding visit.
type AddResult struct {
	Customer  domain.Customer `json:"customer"`
	Added     int             `json:"added"`
	Truncated bool            `json:"truncated"`
	Completed bool            `json:"completed"`
	NewCards  []Card          `json:"newCards,omitempty"`
}

// IssueResult reports a redeemed card: the coupon and the reset snapshot.
type IssueResult struct {
	Coupon   domain.Coupon   `json:"coupon"`
	Customer domain.Customer `json:"customer"`
}

// AddStamps adds up to requested stamps to the customer's card, clamped so
// the counter never exceeds the card size. Reaching a full card only flags
// completion; redemption is a separate, explicit IssueCoupon call.
func (s *Service) AddStamps(ctx context.Context, customerID string, requested int) (*AddResult, error) {
	if requested < 1 || requested > domain.MaxStamps {
		return nil, fmt.Errorf("%w: stamp count must be between 1 and %d", domain.ErrInvalidInput, domain.MaxStamps)
	}

	for attempt := 0; attempt < 2; attempt++ {
		cust, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if cust.CardComplete() {
			return nil, domain.ErrCardFull
		}

		actual := requested
		if room := domain.MaxStamps - cust.CurrentStamps; actual > room {
			actual = room
		}
		newCount := cust.CurrentStamps + actual
		newTotal := cust.TotalStamps + actual
		newVisits := cust.VisitCount + 1
		now := s.now()

		updated, err := s.customers.ConditionalUpdate(ctx, cust.ID, customerrepo.Changes{
			CurrentStamps: &newCount,
			TotalStamps:   &newTotal,
			VisitCount:    &newVisits,
			LastVisit:     &now,
		}, cust.Version)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if _, err := s.visits.Insert(ctx, cust.ID, actual); err != nil {
			return nil, fmt.Errorf("record visit: %w", err)
		}

		return &AddResult{
			Customer:  *updated,
			Added:     actual,
			Truncated: actual < requested,
			Completed: updated.CardComplete(),
			NewCards:  cardsFilled(cust.CurrentStamps, newCount),
		}, nil
	}
	return nil, domain.ErrConflict
}

// IssueCoupon redeems a full card: it inserts the coupon and resets the
// counter in one guarded transaction. An unused stamp coupon issued since
// the completing visit marks an interrupted earlier attempt; that coupon is
// reused and only the reset is completed, never a second insert.
func (s *Service) IssueCoupon(ctx context.Context, customerID string) (*IssueResult, error) {
	for attempt := 0; attempt < 2; attempt++ {
		cust, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if !cust.CardComplete() {
			return nil, domain.ErrNotEligible
		}

		pending, err := s.coupons.FindPendingStamp(ctx, cust.ID, cust.LastVisit)
		switch {
		case err == nil:
			zero := 0
			n := cust.Coupons + 1
			updated, err := s.customers.ConditionalUpdate(ctx, cust.ID, customerrepo.Changes{
				CurrentStamps: &zero,
				Coupons:       &n,
			}, cust.Version)
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return &IssueResult{Coupon: *pending, Customer: *updated}, nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}

		now := s.now()
		validFrom := now
		validUntil := endOfDay(now.AddDate(0, 0, s.validDays))
		coupon, updated, err := s.coupons.IssueWithReset(ctx, couponrepo.CreateInput{
			CustomerID: cust.ID,
			Code:       NewCode(domain.CouponPrefixStamp, now),
			ValidFrom:  &validFrom,
			ValidUntil: &validUntil,
		}, cust.Version, cust.Coupons+1)
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrAlreadyExists) {
			// lost the race or collided on a code; one fresh attempt
			continue
		}
		if err != nil {
			return nil, err
		}
		return &IssueResult{Coupon: *coupon, Customer: *updated}, nil
	}

	// Both attempts lost: either another caller redeemed this crossing, or
	// the row is genuinely contended.
	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !cust.CardComplete() {
		return nil, domain.ErrNotEligible
	}
	return nil, domain.ErrConflict
}

// CorrectStamps is the manual admin override. It adjusts the lifetime
// total by the same delta, leaves the visit log untouched, and never
// issues a coupon; IssueCoupon stays the only redemption gate.
func (s *Service) CorrectStamps(ctx context.Context, customerID string, newValue int) (*domain.Customer, error) {
	if newValue < 0 || newValue > domain.MaxStamps {
		return nil, fmt.Errorf("%w: stamp count must be between 0 and %d", domain.ErrInvalidInput, domain.MaxStamps)
	}

	for attempt := 0; attempt < 2; attempt++ {
		cust, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}

		newTotal := cust.TotalStamps + (newValue - cust.CurrentStamps)
		if newTotal < 0 {
			newTotal = 0
		}

		updated, err := s.customers.ConditionalUpdate(ctx, cust.ID, customerrepo.Changes{
			CurrentStamps: &newValue,
			TotalStamps:   &newTotal,
		}, cust.Version)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, domain.ErrConflict
}
