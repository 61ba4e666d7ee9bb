package service

import (
	"net/url"
	"strings"
)

// NormalizeURL reduces a source URL to the comparison form stored in the
// exclusions table: scheme dropped, host lowercased, trailing slash
// stripped. Unparseable input is returned lowercase-trimmed so comparisons
// stay total.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		// try again with a scheme so host parsing works for bare domains
		u, err = url.Parse("http://" + s)
		if err != nil || u.Host == "" {
			return strings.TrimSuffix(strings.ToLower(s), "/")
		}
	}
	host := strings.ToLower(u.Host)
	path := strings.TrimSuffix(u.Path, "/")
	out := host + path
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
