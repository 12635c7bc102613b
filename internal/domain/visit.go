package domain

import "time"

// Visit is one append-only row per stamp-adding visit.
type Visit struct {
	ID          int64     `json:"id"`
	CustomerID  string    `json:"customerId"`
	VisitDate   time.Time `json:"visitDate"`
	StampsAdded int       `json:"stampsAdded"`
}
