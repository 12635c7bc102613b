// Package birthday grants at most one birthday coupon per customer per
// calendar year and surfaces upcoming birthdays for the admin screen.
package birthday

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
	"github.com/iseungsang01/tarot-manager-app/internal/service/stamp"
)

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListWithBirthday(ctx context.Context) ([]domain.Customer, error)
	ConditionalUpdate(ctx context.Context, id string, ch customerrepo.Changes, expectedVersion int64) (*domain.Customer, error)
}

type couponRepo interface {
	Create(ctx context.Context, in couponrepo.CreateInput) (*domain.Coupon, error)
	CountBirthdaySince(ctx context.Context, customerID string, since time.Time) (int, error)
}

// Service handles birthday coupon grants.
type Service struct {
	customers customerRepo
	coupons   couponRepo
	validDays int
	now       func() time.Time
}

// New creates a Service. validDays is the window length counted from the
// birthday itself.
func New(customers customerRepo, coupons couponRepo, validDays int) *Service {
	if validDays <= 0 {
		validDays = 7
	}
	return &Service{
		customers: customers,
		coupons:   coupons,
		validDays: validDays,
		now:       time.Now,
	}
}

// Grant issues this year's birthday coupon. A BIRTHDAY coupon already
// issued since January 1st makes the customer ineligible until next year.
func (s *Service) Grant(ctx context.Context, customerID string) (*domain.Coupon, error) {
	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cust.Birthday == nil {
		return nil, fmt.Errorf("%w: no birthday on file", domain.ErrInvalidInput)
	}

	now := s.now()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	granted, err := s.coupons.CountBirthdaySince(ctx, cust.ID, startOfYear)
	if err != nil {
		return nil, err
	}
	if granted > 0 {
		return nil, domain.ErrAlreadyGranted
	}

	bday := *cust.Birthday
	validFrom := time.Date(now.Year(), bday.Month(), bday.Day(), 0, 0, 0, 0, now.Location())
	until := validFrom.AddDate(0, 0, s.validDays)
	validUntil := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, until.Location())

	coupon, err := s.coupons.Create(ctx, couponrepo.CreateInput{
		CustomerID: cust.ID,
		Code:       stamp.NewCode(domain.CouponPrefixBirthday, now),
		ValidFrom:  &validFrom,
		ValidUntil: &validUntil,
	})
	if err != nil {
		return nil, err
	}

	// bump the coupons counter; one retry if the row moved under us
	for attempt := 0; attempt < 2; attempt++ {
		n := cust.Coupons + 1
		if _, err := s.customers.ConditionalUpdate(ctx, cust.ID, customerrepo.Changes{Coupons: &n}, cust.Version); err == nil {
			break
		} else if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if cust, err = s.customers.GetByID(ctx, cust.ID); err != nil {
			return nil, err
		}
	}

	return coupon, nil
}

// Entry is one upcoming-birthday row.
type Entry struct {
	Customer  domain.Customer `json:"customer"`
	DaysUntil int             `json:"daysUntil"`
}

// Upcoming groups customers by birthday proximity.
type Upcoming struct {
	Today     []Entry `json:"today"`
	ThisWeek  []Entry `json:"thisWeek"`
	ThisMonth []Entry `json:"thisMonth"`
}

// ListUpcoming buckets customers with a birthday on file into today,
// within-seven-days, and later-this-month groups.
func (s *Service) ListUpcoming(ctx context.Context) (*Upcoming, error) {
	customers, err := s.customers.ListWithBirthday(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	up := &Upcoming{}
	for _, c := range customers {
		if c.Birthday == nil {
			continue
		}
		days := daysUntilBirthday(*c.Birthday, today)
		entry := Entry{Customer: c, DaysUntil: days}
		switch {
		case days == 0:
			up.Today = append(up.Today, entry)
		case days <= 7:
			up.ThisWeek = append(up.ThisWeek, entry)
		case c.Birthday.Month() == today.Month():
			up.ThisMonth = append(up.ThisMonth, entry)
		}
	}

	sort.Slice(up.ThisWeek, func(i, j int) bool { return up.ThisWeek[i].DaysUntil < up.ThisWeek[j].DaysUntil })
	sort.Slice(up.ThisMonth, func(i, j int) bool { return up.ThisMonth[i].DaysUntil < up.ThisMonth[j].DaysUntil })
	return up, nil
}

// daysUntilBirthday counts days from today to the next occurrence of the
// birthday, rolling into next year when this year's date already passed.
func daysUntilBirthday(birthday, today time.Time) int {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return int(next.Sub(today).Hours() / 24)
}
