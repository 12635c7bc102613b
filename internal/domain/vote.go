package domain

import "time"

// VoteOption is one choice within a vote.
type VoteOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Vote is a customer poll. Ballot tallies are derived from vote_responses
// rows by aggregation rather than stored as counters.
type Vote struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Options       []VoteOption `json:"options"`
	EndsAt        *time.Time   `json:"endsAt,omitempty"`
	AllowMultiple bool         `json:"allowMultiple"`
	MaxSelections int          `json:"maxSelections"`
	IsActive      bool         `json:"isActive"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// OpenAt reports whether ballots are accepted at t.
func (v Vote) OpenAt(t time.Time) bool {
	if !v.IsActive {
		return false
	}
	if v.EndsAt != nil && t.After(*v.EndsAt) {
		return false
	}
	return true
}

// HasOption reports whether id names one of the vote's options.
func (v Vote) HasOption(id int) bool {
	for _, opt := range v.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// VoteResult is the aggregated tally for one vote.
type VoteResult struct {
	Vote         Vote              `json:"vote"`
	TotalBallots int               `json:"totalBallots"`
	Counts       map[int]int       `json:"counts"`
	Options      []VoteOptionCount `json:"options"`
}

// VoteOptionCount pairs an option with its ballot count.
type VoteOptionCount struct {
	Option VoteOption `json:"option"`
	Count  int        `json:"count"`
}
