// Package domain defines the saved-search (user_query) types and ports:
// the persisted person-watch row, its results, and the match-lifecycle
// state machine that routes user feedback into exclusions.
package domain

import (
	"time"

	searchdom "obitwatch/internal/services/search/domain"
)

// SavedSearch is the persisted form of a person query plus ownership and
// lifecycle flags. A confirmed search is always disabled; no further
// batch-generated results may be inserted against it.
type SavedSearch struct {
	ID      string `json:"id"`
	LoginID string `json:"loginId"`

	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName,omitempty"`
	Nickname   string `json:"nickname,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Age        *int   `json:"age,omitempty"`
	Keywords   string `json:"keyWords,omitempty"`

	InputDate *time.Time `json:"inputDate,omitempty"`

	SearchKey   string     `json:"keySearch"`
	Disabled    bool       `json:"disabled"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Result is a persisted candidate attached to a saved search.
type Result struct {
	searchdom.Candidate
	UserQueryID string `json:"userQueryId"`
}

// CreateInput is the payload for creating a saved search.
type CreateInput struct {
	LoginID    string `json:"-"`
	FirstName  string `json:"firstName" validate:"required_without=Nickname,omitempty,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	MiddleName string `json:"middleName,omitempty" validate:"omitempty,max=100"`
	Nickname   string `json:"nickname,omitempty" validate:"omitempty,max=100"`
	City       string `json:"city,omitempty" validate:"omitempty,max=100"`
	State      string `json:"state,omitempty" validate:"omitempty,max=40"`
	Age        *int   `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	Keywords   string `json:"keyWords,omitempty" validate:"omitempty,max=500"`
	InputDate  string `json:"inputDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateInput mirrors CreateInput for edits; Update replaces every person
// field, so an empty optional field (including a nil Age) clears the
// stored value.
type UpdateInput = CreateInput

// SearchSummary is the per-search slice of a user's match overview.
type SearchSummary struct {
	SearchID    string `json:"searchId"`
	PersonName  string `json:"personName"`
	Pending     int    `json:"pending"`
	Unread      int    `json:"unread"`
	Confirmed   bool   `json:"confirmed"`
	LastRanDt   string `json:"lastRanDt,omitempty"`
	BestRankURL string `json:"bestRankUrl,omitempty"`
}

// UserUnread is the post-batch notification summary for one user: every
// active search of theirs that now holds unread pending results.
type UserUnread struct {
	LoginID  string          `json:"loginId"`
	Searches []SearchSummary `json:"searches"`
}
