// Package score implements the five (or six, with keywords) independent
// identity-scoring criteria: last name, first name, state, city,
// age, and an optional keyword match. Every criterion returns a 0-100
// score or nil when an input field was absent on either side — nil means
// "not scorable", not "scored zero".
package score

import (
	"strings"
	"time"
)

// Levenshtein returns the edit distance between a and b. No third-party
// fuzzy-matching library appears anywhere in the retrieved pack, so this
// is a small stdlib-only implementation (single-row dynamic programming).
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Similarity converts a Levenshtein distance between a and b into a 0-100
// normalized similarity: 100 for identical strings, 0 when the distance
// equals the length of the longer string.
func Similarity(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	dist := Levenshtein(a, b)
	sim := 1.0 - float64(dist)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	return int(sim*100 + 0.5)
}

func ptr(n int) *int { return &n }

// LastName scores normalized last names: exact match is 100, otherwise a
// Levenshtein similarity. Both names must already be normalized by the
// caller. Returns nil only if either side is empty.
func LastName(queryLast, candLast string) *int {
	if queryLast == "" || candLast == "" {
		return nil
	}
	if queryLast == candLast {
		return ptr(100)
	}
	return ptr(Similarity(queryLast, candLast))
}

// NicknameChecker answers whether two normalized names are mutual nickname
// variants, per internal/core/normalize.
type NicknameChecker interface {
	IsNicknamePair(a, b string) bool
}

// FirstName scores normalized first names: exact match is 100; a known
// nickname pair is capped at 85 so a true exact match always outranks a
// nickname guess; otherwise a Levenshtein similarity is used only if it
// clears 0.70, else the candidate is scored 0 (present but clearly
// different — callers must drop these per the no-same-name-stranger
// invariant). Returns nil only if either side is empty.
func FirstName(queryFirst, candFirst string, nn NicknameChecker) *int {
	if queryFirst == "" || candFirst == "" {
		return nil
	}
	if queryFirst == candFirst {
		return ptr(100)
	}
	if nn != nil && nn.IsNicknamePair(queryFirst, candFirst) {
		return ptr(85)
	}
	maxLen := len([]rune(queryFirst))
	if l := len([]rune(candFirst)); l > maxLen {
		maxLen = l
	}
	dist := Levenshtein(queryFirst, candFirst)
	sim := 1.0 - float64(dist)/float64(maxLen)
	if sim < 0.70 {
		return ptr(0)
	}
	s := int(sim*90 + 0.5)
	if s > 90 {
		s = 90
	}
	return ptr(s)
}

// State scores two normalized (uppercased) 2-letter codes: 100 if equal,
// else 0. Returns nil only if either side is empty.
func State(queryState, candState string) *int {
	if queryState == "" || candState == "" {
		return nil
	}
	if strings.EqualFold(queryState, candState) {
		return ptr(100)
	}
	return ptr(0)
}

// City scores two normalized cities: 100 if equal, 50 if they differ but
// state matches, 0 otherwise. Returns nil only if either city is empty.
func City(queryCity, candCity, queryState, candState string) *int {
	if queryCity == "" || candCity == "" {
		return nil
	}
	if queryCity == candCity {
		return ptr(100)
	}
	if queryState != "" && candState != "" && strings.EqualFold(queryState, candState) {
		return ptr(50)
	}
	return ptr(0)
}

// Age scores by absolute delta between the candidate's age and the query
// age adjusted forward by elapsed years (fractional) since inputDate.
// Returns nil if either age is absent.
func Age(queryAge *int, inputDate time.Time, candAge *int, now time.Time) *int {
	if queryAge == nil || candAge == nil {
		return nil
	}
	elapsedYears := now.Sub(inputDate).Hours() / (24 * 365.25)
	if elapsedYears < 0 {
		elapsedYears = 0
	}
	adjusted := float64(*queryAge) + elapsedYears
	delta := adjusted - float64(*candAge)
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta <= 0.5:
		return ptr(100)
	case delta <= 1:
		return ptr(90)
	case delta <= 2:
		return ptr(80)
	case delta <= 3:
		return ptr(70)
	case delta <= 4:
		return ptr(60)
	case delta <= 5:
		return ptr(50)
	case delta <= 6:
		return ptr(40)
	default:
		return ptr(0)
	}
}

// Keywords scores the optional sixth criterion: nil if the query carried
// no keywords; 100 if any keyword is a case-insensitive substring of
// snippet+title, else 0.
func Keywords(keywords []string, snippet, title string) *int {
	if len(keywords) == 0 {
		return nil
	}
	hay := strings.ToLower(snippet + " " + title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(hay, strings.ToLower(kw)) {
			return ptr(100)
		}
	}
	return ptr(0)
}

// Breakdown is the sum/max/count rollup over a set of criterion pointers.
type Breakdown struct {
	ScoreFinal  int
	ScoreMax    int
	CriteriaCnt int
}

// Sum rolls up any number of criterion scores (nil entries are skipped)
// into scoreFinal, scoreMax, and criteriaCnt.
func Sum(criteria ...*int) Breakdown {
	var b Breakdown
	for _, c := range criteria {
		if c == nil {
			continue
		}
		b.ScoreFinal += *c
		b.ScoreMax += 100
		b.CriteriaCnt++
	}
	return b
}
