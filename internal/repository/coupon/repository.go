package coupon

import (
	"context"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// CreateInput carries the fields of a freshly issued coupon.
type CreateInput struct {
	CustomerID string
	Code       string
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// ListFilter narrows the admin coupon listing.
type ListFilter string

const (
	FilterAll     ListFilter = "all"
	FilterValid   ListFilter = "valid"
	FilterExpired ListFilter = "expired"
)

// WithCustomer joins a coupon with its owner's display fields.
type WithCustomer struct {
	domain.Coupon
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phoneNumber"`
}

// Repository is the append-mostly coupon store.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Coupon, error)
	// IssueWithReset inserts the coupon and zeroes the owner's stamp counter
	// in one transaction, guarded by the customer's version. When the guard
	// misses the whole transaction rolls back and ErrConflict is returned, so
	// two callers racing on the same crossing can never both insert.
	IssueWithReset(ctx context.Context, in CreateInput, expectedVersion int64, newCouponCount int) (*domain.Coupon, *domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Coupon, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Coupon, error)
	List(ctx context.Context, filter ListFilter, now time.Time) ([]WithCustomer, error)
	// FindPendingStamp returns the newest unused stamp-type coupon issued
	// at or after since, used to detect an interrupted issuance.
	FindPendingStamp(ctx context.Context, customerID string, since time.Time) (*domain.Coupon, error)
	CountBirthdaySince(ctx context.Context, customerID string, since time.Time) (int, error)
	SetUsed(ctx context.Context, id string, used bool) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
