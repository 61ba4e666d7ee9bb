package normalize

import "strings"

// stateNames maps lowercased full state/territory names to their 2-letter
// USPS code.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
	"district of columbia": "DC",
	"puerto rico":          "PR",
	"guam":                 "GU",
	"american samoa":       "AS",
	"virgin islands":       "VI",
	"northern mariana islands": "MP",
}

// validCodes is the set of 2-letter codes State() may emit verbatim.
var validCodes = func() map[string]bool {
	m := make(map[string]bool, len(stateNames))
	for _, code := range stateNames {
		m[code] = true
	}
	return m
}()

// State maps a full U.S. state name (case-insensitive) to its 2-letter USPS
// code. An already-2-letter code is passed through uppercased. Unknown
// input is passed through uppercased (trimmed, not otherwise altered) so
// callers can still fingerprint and display it.
func (n *Normalizer) State(s string) string {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ""
	}
	if code, ok := stateNames[trimmed]; ok {
		return code
	}
	upper := strings.ToUpper(strings.TrimSpace(s))
	return upper
}

// IsUSPSCode reports whether s (after trimming) is a recognized 2-letter
// USPS state/territory code.
func IsUSPSCode(s string) bool {
	return validCodes[strings.ToUpper(strings.TrimSpace(s))]
}
