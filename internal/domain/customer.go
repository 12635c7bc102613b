package domain

import "time"

// MaxStamps is the card size: a coupon is earned every MaxStamps stamps.
const MaxStamps = 10

// Customer is a stamp-card holder identified by phone number.
type Customer struct {
	ID            string     `json:"id"`
	PhoneNumber   string     `json:"phoneNumber"`
	Nickname      string     `json:"nickname"`
	Birthday      *time.Time `json:"birthday,omitempty"`
	CurrentStamps int        `json:"currentStamps"`
	TotalStamps   int        `json:"totalStamps"`
	Coupons       int        `json:"coupons"`
	VisitCount    int        `json:"visitCount"`
	Version       int64      `json:"-"`
	FirstVisit    time.Time  `json:"firstVisit"`
	LastVisit     time.Time  `json:"lastVisit"`
	DeletedAt     *time.Time `json:"-"`
}

// CardComplete reports whether the card holds a full set of stamps.
func (c Customer) CardComplete() bool {
	return c.CurrentStamps >= MaxStamps
}
