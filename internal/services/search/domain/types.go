// Package domain defines the core types and ports of the obituary search
// engine: the person query, the scored candidate, and the storage/provider
// seams the service depends on.
package domain

import "time"

// Status is a result's position in the match lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// ProviderType tags which search provider produced a candidate.
type ProviderType string

const (
	ProviderSerper    ProviderType = "serper"
	ProviderSerpAPI   ProviderType = "serpapi"
	ProviderGoogleCSE ProviderType = "google"
	ProviderNative    ProviderType = "native"
)

// Query is a normalized person query: the input to one search pass.
type Query struct {
	FirstName  string
	LastName   string
	MiddleName string
	Nickname   string
	City       string
	State      string
	Age        *int
	Keywords   []string

	// InputDate ages Age forward by elapsed years with fractional
	// precision. Never future-dated; missing means "today".
	InputDate time.Time

	SearchKey string
}

// ScoreBreakdown carries the five (or six, with keywords) independent
// criteria from section 4.5. A nil pointer means "not scorable" because an
// input field was absent on either side.
type ScoreBreakdown struct {
	LastName *int
	First    *int
	State    *int
	City     *int
	Age      *int
	Keywords *int

	ScoreFinal  int
	ScoreMax    int
	CriteriaCnt int
}

// Candidate is a structured record extracted from a single source URL,
// scored and ranked against a Query.
type Candidate struct {
	ID string

	NameFull  string
	NameFirst string
	NameLast  string
	Age       *int
	DOD       string // ISO YYYY-MM-DD, "" if unknown
	City      string
	State     string

	SourceLabel string
	URL         string
	Snippet     string
	Provider    ProviderType
	ImageURL    string

	Visitation string
	Funeral    string

	AlsoFoundAt []string

	Fingerprint string
	Score       ScoreBreakdown
	Rank        int

	IsRead bool
	Status Status
	RanDt  time.Time
}

// NeedsEnrichment reports whether any of the four enrichable fields is
// missing, per the "missing any of {funeral date, visitation date, image
// URL, DOD}" enrichment gate.
func (c *Candidate) NeedsEnrichment() bool {
	return c.Funeral == "" || c.Visitation == "" || c.ImageURL == "" || c.DOD == ""
}
