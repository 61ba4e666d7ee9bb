package service

import (
	"sort"
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/services/search/domain"
)

// dedup groups candidates by fingerprint and keeps one candidate per
// group: the one with the highest provisional score. Losers' URLs are
// folded into the winner's alsoFoundAt, and any structured field the
// winner lacks is borrowed from the losing candidates — native/funeral-
// home donors first regardless of their score, then the rest by
// descending provisional score — so the winner keeps its own score but
// gains the best available detail. First-seen order of fingerprints is
// preserved.
func dedup(q domain.Query, norm *normalize.Normalizer, now time.Time, xs []domain.Candidate) []domain.Candidate {
	type entry struct {
		cand        domain.Candidate
		provisional int
	}

	groups := make(map[string][]entry, len(xs))
	order := make([]string, 0, len(xs))

	for _, c := range xs {
		prov := scoreCandidate(q, c, norm, now).ScoreFinal
		if _, ok := groups[c.Fingerprint]; !ok {
			order = append(order, c.Fingerprint)
		}
		groups[c.Fingerprint] = append(groups[c.Fingerprint], entry{cand: c, provisional: prov})
	}

	out := make([]domain.Candidate, 0, len(order))
	for _, fp := range order {
		members := groups[fp]

		// winner: highest provisional score, first seen wins ties
		winIdx := 0
		for i := 1; i < len(members); i++ {
			if members[i].provisional > members[winIdx].provisional {
				winIdx = i
			}
		}
		winner := members[winIdx].cand

		donors := make([]entry, 0, len(members)-1)
		for i, e := range members {
			if i != winIdx {
				donors = append(donors, e)
			}
		}
		// a native donor outranks search-engine-only donors even when its
		// provisional score is lower; within each class, higher score first
		sort.SliceStable(donors, func(i, j int) bool {
			ni := donors[i].cand.Provider == domain.ProviderNative
			nj := donors[j].cand.Provider == domain.ProviderNative
			if ni != nj {
				return ni
			}
			return donors[i].provisional > donors[j].provisional
		})

		for _, d := range donors {
			winner.AlsoFoundAt = mergeAlsoFoundAt(winner, d.cand)
			borrowStructuredFields(&winner, d.cand)
		}
		out = append(out, winner)
	}
	return out
}

// mergeAlsoFoundAt folds loser's URL and its own alsoFoundAt list into
// winner's, dropping duplicates and winner's own URL.
func mergeAlsoFoundAt(winner, loser domain.Candidate) []string {
	seen := map[string]bool{winner.URL: true}
	out := append([]string(nil), winner.AlsoFoundAt...)
	for _, u := range out {
		seen[u] = true
	}

	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}
	add(loser.URL)
	for _, u := range loser.AlsoFoundAt {
		add(u)
	}
	return out
}

// borrowStructuredFields fills any empty structured field on dst from src.
// Never overwrites a present value; donor precedence (native before
// search-engine-only) is the caller's ordering of src candidates.
func borrowStructuredFields(dst *domain.Candidate, src domain.Candidate) {
	if dst.NameFirst == "" {
		dst.NameFirst = src.NameFirst
	}
	if dst.NameLast == "" {
		dst.NameLast = src.NameLast
	}
	if dst.NameFull == "" {
		dst.NameFull = src.NameFull
	}
	if dst.Age == nil {
		dst.Age = src.Age
	}
	if dst.DOD == "" {
		dst.DOD = src.DOD
	}
	if dst.City == "" {
		dst.City = src.City
	}
	if dst.State == "" {
		dst.State = src.State
	}
	if dst.Visitation == "" {
		dst.Visitation = src.Visitation
	}
	if dst.Funeral == "" {
		dst.Funeral = src.Funeral
	}
	if dst.ImageURL == "" {
		dst.ImageURL = src.ImageURL
	}
}
