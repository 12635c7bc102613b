package domain

import (
	"strings"
	"time"
)

// Coupon code prefixes distinguish the two grant types.
const (
	CouponPrefixStamp    = "COUPON"
	CouponPrefixBirthday = "BIRTHDAY"
)

// Coupon is a reward record; created once at issuance, never reused.
type Coupon struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Code       string     `json:"code"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	IsUsed     bool       `json:"isUsed"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
}

// IsBirthday reports whether the coupon was granted as a birthday reward.
func (c Coupon) IsBirthday() bool {
	return strings.HasPrefix(c.Code, CouponPrefixBirthday)
}

// ValidAt reports whether the coupon's validity window covers t.
// A nil bound is open-ended on that side.
func (c Coupon) ValidAt(t time.Time) bool {
	if c.ValidFrom != nil && t.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && t.After(*c.ValidUntil) {
		return false
	}
	return true
}
