package service

import (
	"context"
	"testing"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/services/search/domain"
)

type fakeProvider struct {
	name  domain.ProviderType
	cands []domain.Candidate
	err   error
}

func (f fakeProvider) Name() domain.ProviderType { return f.name }
func (f fakeProvider) Search(_ context.Context, _ domain.Query) ([]domain.Candidate, error) {
	return f.cands, f.err
}

type fakeExclusions struct {
	excludedFingerprints map[string]bool
}

func (f fakeExclusions) IsExcluded(_ context.Context, _ string, c domain.Candidate) (bool, error) {
	return f.excludedFingerprints[c.Fingerprint], nil
}

type fakeEnricher struct {
	calls int
}

func (f *fakeEnricher) Enrich(_ context.Context, c *domain.Candidate) {
	f.calls++
	c.ImageURL = "https://example.com/photo.jpg"
}

func TestService_Search_NicknameMatchWorkedExample(t *testing.T) {
	age := 71
	query := domain.Query{
		FirstName: "Jim",
		LastName:  "Smith",
		State:     "OH",
		Age:       &age,
	}

	candAge := 71
	provider := fakeProvider{
		name: domain.ProviderSerper,
		cands: []domain.Candidate{
			{
				Fingerprint: "smith-j-unknown-oh-unknown",
				NameFirst:   "James",
				NameLast:    "Smith",
				State:       "OH",
				Age:         &candAge,
				URL:         "https://legacy.com/obit/james-smith",
				Provider:    domain.ProviderSerper,
			},
		},
	}

	svc := New(provider, nil, nil, normalize.New(), Config{EnrichPages: false})
	out, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 ranked result, got %d", len(out))
	}
	got := out[0]
	if got.Score.LastName == nil || *got.Score.LastName != 100 {
		t.Fatalf("expected nameLast=100, got %v", got.Score.LastName)
	}
	if got.Score.First == nil || *got.Score.First != 85 {
		t.Fatalf("expected nameFirst=85 (nickname), got %v", got.Score.First)
	}
	if got.Score.State == nil || *got.Score.State != 100 {
		t.Fatalf("expected state=100, got %v", got.Score.State)
	}
	if got.Score.City != nil {
		t.Fatalf("expected city=null, got %v", got.Score.City)
	}
	if got.Score.Age == nil || *got.Score.Age != 100 {
		t.Fatalf("expected age=100, got %v", got.Score.Age)
	}
	if got.Score.ScoreFinal != 385 {
		t.Fatalf("expected scoreFinal=385, got %d", got.Score.ScoreFinal)
	}
	if got.Score.ScoreMax != 400 {
		t.Fatalf("expected scoreMax=400, got %d", got.Score.ScoreMax)
	}
}

func TestService_Search_DropsStrangerWithSameSurname(t *testing.T) {
	query := domain.Query{FirstName: "James", LastName: "Smith"}
	provider := fakeProvider{
		cands: []domain.Candidate{
			{Fingerprint: "smith-k-unknown-unknown-unknown", NameFirst: "Kevin", NameLast: "Smith", URL: "https://legacy.com/a"},
		},
	}
	svc := New(provider, nil, nil, normalize.New(), Config{EnrichPages: false})
	out, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected same-surname stranger to be dropped, got %d results", len(out))
	}
}

func TestService_Search_ExclusionSuppressesFingerprint(t *testing.T) {
	query := domain.Query{FirstName: "James", LastName: "Smith"}
	cand := domain.Candidate{Fingerprint: "smith-j-unknown-unknown-unknown", NameFirst: "James", NameLast: "Smith", URL: "https://legacy.com/a"}
	provider := fakeProvider{cands: []domain.Candidate{cand}}
	excl := fakeExclusions{excludedFingerprints: map[string]bool{cand.Fingerprint: true}}

	svc := New(provider, nil, excl, normalize.New(), Config{EnrichPages: false})
	out, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected excluded fingerprint to be suppressed, got %d results", len(out))
	}
}

func TestService_Search_EnrichesTopIncompleteResult(t *testing.T) {
	query := domain.Query{FirstName: "James", LastName: "Smith"}
	provider := fakeProvider{
		cands: []domain.Candidate{
			{Fingerprint: "smith-j-unknown-unknown-unknown", NameFirst: "James", NameLast: "Smith", URL: "https://legacy.com/a"},
		},
	}
	enricher := &fakeEnricher{}
	svc := New(provider, enricher, nil, normalize.New(), Config{EnrichPages: true, EnrichTopN: 1})
	out, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if enricher.calls != 1 {
		t.Fatalf("expected enricher to be called once, got %d", enricher.calls)
	}
	if out[0].ImageURL == "" {
		t.Fatalf("expected enrichment to backfill image URL")
	}
}
