package service

import (
	"testing"

	"obitwatch/internal/services/search/domain"
)

func TestFilterBlockedDomains(t *testing.T) {
	xs := []domain.Candidate{
		{Fingerprint: "a", URL: "https://www.legacy.com/obituary/smith"},
		{Fingerprint: "b", URL: "https://county.ca.gov/obits/smith"},
		{Fingerprint: "c", URL: "not a url ://broken"},
	}
	out := filterBlockedDomains(xs, []string{".gov"})
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(out))
	}
	for _, c := range out {
		if c.Fingerprint == "b" {
			t.Fatalf("expected .gov candidate to be filtered out")
		}
	}
}

func TestFilterBlockedDomains_NoBlockedSuffixesIsNoOp(t *testing.T) {
	xs := []domain.Candidate{{Fingerprint: "a", URL: "https://county.ca.gov/obits/smith"}}
	out := filterBlockedDomains(xs, nil)
	if len(out) != 1 {
		t.Fatalf("expected no filtering with empty block list, got %d", len(out))
	}
}
