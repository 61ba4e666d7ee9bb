package extract

import (
	"regexp"
	"strings"

	"obitwatch/internal/core/normalize"
)

// cityWordsPattern allows internal spaces/hyphens so "Saint Louis" or
// "Winston-Salem" come through as one city, capped at three words.
const cityWordsPattern = `([A-Z][a-zA-Z'.-]*(?:\s+[A-Z][a-zA-Z'.-]*){0,2})`

var (
	reLocationOfIn = regexp.MustCompile(
		`(?:of|in)\s+` + cityWordsPattern + `,\s*([A-Z]{2}|[A-Z][a-zA-Z ]+)\b`)

	locationNormalizer = normalize.New()
)

// Location is a city/state pair recovered from free text. Either field may
// be empty.
type Location struct {
	City  string
	State string
}

// ExtractLocation looks for "of <City>, <ST>" or "in <City>, <ST>" (or with
// a full state name in place of the code). The state must resolve to a
// real USPS code, directly or via normalize.State, or the match is
// discarded.
func ExtractLocation(text string) (Location, bool) {
	m := reLocationOfIn.FindStringSubmatch(text)
	if m == nil {
		return Location{}, false
	}
	city := strings.TrimSpace(m[1])
	stateRaw := strings.TrimSpace(m[2])

	state := locationNormalizer.State(stateRaw)
	if !normalize.IsUSPSCode(state) {
		return Location{}, false
	}
	return Location{City: city, State: state}, true
}
