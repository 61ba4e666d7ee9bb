package service

import (
	"net/url"
	"strings"

	"obitwatch/internal/services/search/domain"
)

// defaultDomainsBlocked default: government sites never host an
// obituary worth surfacing.
var defaultDomainsBlocked = []string{".gov"}

// filterBlockedDomains drops candidates whose URL host ends with a
// configured suffix. A candidate with an unparsable URL passes through
// unfiltered.
func filterBlockedDomains(xs []domain.Candidate, blocked []string) []domain.Candidate {
	if len(blocked) == 0 {
		return xs
	}
	out := make([]domain.Candidate, 0, len(xs))
	for _, c := range xs {
		if isBlockedDomain(c.URL, blocked) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func isBlockedDomain(rawURL string, blocked []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, suf := range blocked {
		if suf == "" {
			continue
		}
		if strings.HasSuffix(host, strings.ToLower(suf)) {
			return true
		}
	}
	return false
}
