package service

import (
	"testing"
	"time"

	"obitwatch/internal/services/search/domain"
)

func scored(fp string, scoreFinal int, dod string) domain.Candidate {
	return domain.Candidate{
		Fingerprint: fp,
		DOD:         dod,
		Score:       domain.ScoreBreakdown{ScoreFinal: scoreFinal},
	}
}

func TestRank_RecentBeatsHigherScoreInOtherPartition(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	a := scored("a", 380, now.AddDate(-1, 0, 0).Format("2006-01-02")) // 1 year ago: other
	b := scored("b", 340, now.AddDate(0, 0, -5).Format("2006-01-02")) // 5 days ago: recent

	out := rank([]domain.Candidate{a, b}, 14, 20, now)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].Fingerprint != "b" || out[0].Rank != 1 {
		t.Fatalf("expected recent candidate b ranked first, got %+v", out[0])
	}
	if out[1].Fingerprint != "a" || out[1].Rank != 2 {
		t.Fatalf("expected other candidate a ranked second, got %+v", out[1])
	}
}

func TestRank_TiesShareRank(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	recentDOD := now.AddDate(0, 0, -2).Format("2006-01-02")

	a := scored("a", 300, recentDOD)
	b := scored("b", 300, recentDOD)

	out := rank([]domain.Candidate{a, b}, 14, 20, now)
	if out[0].Rank != 1 || out[1].Rank != 1 {
		t.Fatalf("expected tied candidates to share rank 1, got %d and %d", out[0].Rank, out[1].Rank)
	}
}

func TestRank_OtherPartitionAlwaysStartsNewRank(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	recentDOD := now.AddDate(0, 0, -2).Format("2006-01-02")

	recent := scored("recent", 300, recentDOD)
	other := scored("other", 300, "") // same score, but no DOD => other partition

	out := rank([]domain.Candidate{recent, other}, 14, 20, now)
	if out[0].Rank != 1 {
		t.Fatalf("expected recent candidate at rank 1, got %d", out[0].Rank)
	}
	if out[1].Rank != 2 {
		t.Fatalf("expected other-partition candidate to start a new rank despite tie, got %d", out[1].Rank)
	}
}

func TestRank_CapsAtMaxResults(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	xs := make([]domain.Candidate, 5)
	for i := range xs {
		xs[i] = scored(string(rune('a'+i)), 100-i, "")
	}
	out := rank(xs, 14, 3, now)
	if len(out) != 3 {
		t.Fatalf("expected cap at 3, got %d", len(out))
	}
}

func TestRank_FutureDODIsNotRecent(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 5).Format("2006-01-02")

	if isRecentDOD(future, now.AddDate(0, 0, -14), now) {
		t.Fatalf("expected future DOD to be excluded from recent partition")
	}
}
