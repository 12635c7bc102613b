package birthday

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
)

type memCustomers struct {
	byID map[string]domain.Customer
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (m *memCustomers) ListWithBirthday(_ context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range m.byID {
		if c.Birthday != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCustomers) ConditionalUpdate(_ context.Context, id string, ch customerrepo.Changes, expectedVersion int64) (*domain.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.Version != expectedVersion {
		return nil, domain.ErrConflict
	}
	if ch.Coupons != nil {
		c.Coupons = *ch.Coupons
	}
	c.Version++
	m.byID[id] = c
	clone := c
	return &clone, nil
}

type memCoupons struct {
	created      []domain.Coupon
	grantedCount int
}

func (m *memCoupons) Create(_ context.Context, in couponrepo.CreateInput) (*domain.Coupon, error) {
	c := domain.Coupon{
		ID:         in.Code,
		CustomerID: in.CustomerID,
		Code:       in.Code,
		IssuedAt:   time.Now(),
		ValidFrom:  in.ValidFrom,
		ValidUntil: in.ValidUntil,
	}
	m.created = append(m.created, c)
	clone := c
	return &clone, nil
}

func (m *memCoupons) CountBirthdaySince(_ context.Context, _ string, _ time.Time) (int, error) {
	return m.grantedCount, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func withBirthday(id string, birthday time.Time) domain.Customer {
	return domain.Customer{ID: id, PhoneNumber: "010-0000-" + id, Nickname: "고객", Birthday: &birthday}
}

func TestGrant_IssuesWindowedCoupon(t *testing.T) {
	cust := withBirthday("cust-1", date(1995, time.September, 5))
	customers := &memCustomers{byID: map[string]domain.Customer{"cust-1": cust}}
	coupons := &memCoupons{}
	svc := New(customers, coupons, 7)
	svc.now = func() time.Time { return date(2026, time.August, 31) }

	coupon, err := svc.Grant(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if !strings.HasPrefix(coupon.Code, domain.CouponPrefixBirthday) {
		t.Fatalf("unexpected code %q", coupon.Code)
	}
	if got := *coupon.ValidFrom; !got.Equal(date(2026, time.September, 5)) {
		t.Fatalf("valid from = %v, want this year's birthday", got)
	}
	want := time.Date(2026, time.September, 12, 23, 59, 59, 0, time.UTC)
	if got := *coupon.ValidUntil; !got.Equal(want) {
		t.Fatalf("valid until = %v, want %v", got, want)
	}
	if customers.byID["cust-1"].Coupons != 1 {
		t.Fatalf("coupon counter not bumped: %+v", customers.byID["cust-1"])
	}
}

func TestGrant_OncePerCalendarYear(t *testing.T) {
	cust := withBirthday("cust-1", date(1995, time.September, 5))
	customers := &memCustomers{byID: map[string]domain.Customer{"cust-1": cust}}
	coupons := &memCoupons{grantedCount: 1}
	svc := New(customers, coupons, 7)

	if _, err := svc.Grant(context.Background(), "cust-1"); !errors.Is(err, domain.ErrAlreadyGranted) {
		t.Fatalf("expected ErrAlreadyGranted, got %v", err)
	}
	if len(coupons.created) != 0 {
		t.Fatalf("no coupon should be created, got %d", len(coupons.created))
	}
}

func TestGrant_RequiresBirthdayOnFile(t *testing.T) {
	customers := &memCustomers{byID: map[string]domain.Customer{
		"cust-1": {ID: "cust-1", Nickname: "고객"},
	}}
	svc := New(customers, &memCoupons{}, 7)

	if _, err := svc.Grant(context.Background(), "cust-1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListUpcoming_Buckets(t *testing.T) {
	customers := &memCustomers{byID: map[string]domain.Customer{
		"today":      withBirthday("today", date(1990, time.August, 31)),
		"week":       withBirthday("week", date(1990, time.September, 3)),
		"month-only": withBirthday("month-only", date(1990, time.August, 1)), // passed; rolls to next year
		"far":        withBirthday("far", date(1990, time.December, 25)),
	}}
	svc := New(customers, &memCoupons{}, 7)
	svc.now = func() time.Time { return date(2026, time.August, 31) }

	up, err := svc.ListUpcoming(context.Background())
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(up.Today) != 1 || up.Today[0].Customer.ID != "today" {
		t.Fatalf("today bucket: %+v", up.Today)
	}
	if len(up.ThisWeek) != 1 || up.ThisWeek[0].Customer.ID != "week" || up.ThisWeek[0].DaysUntil != 3 {
		t.Fatalf("this-week bucket: %+v", up.ThisWeek)
	}
	// August 1st already passed, but the month view still lists it.
	if len(up.ThisMonth) != 1 || up.ThisMonth[0].Customer.ID != "month-only" {
		t.Fatalf("this-month bucket: %+v", up.ThisMonth)
	}
}

func TestDaysUntilBirthday_RollsOver(t *testing.T) {
	today := date(2026, time.August, 31)
	if got := daysUntilBirthday(date(1990, time.August, 31), today); got != 0 {
		t.Fatalf("same-day = %d, want 0", got)
	}
	if got := daysUntilBirthday(date(1990, time.August, 30), today); got != 364 {
		t.Fatalf("passed birthday = %d, want 364", got)
	}
	if got := daysUntilBirthday(date(1990, time.September, 1), today); got != 1 {
		t.Fatalf("tomorrow = %d, want 1", got)
	}
}
