package normalize

import "strings"

// City lowercases, strips punctuation, collapses whitespace, and unifies
// "St.", "St ", and "Saint " prefixes to the canonical form "saint ".
func (n *Normalizer) City(s string) string {
	c := collapseSpaces(stripPunct(n.base(s), false))
	return unifySaint(c)
}

// CityVariants returns both the "saint x" and "st x" spellings of a
// normalized city, for matching against sources that spell it either way.
// If the city carries no saint/st prefix, both entries equal the input.
func (n *Normalizer) CityVariants(s string) []string {
	c := n.City(s)
	if !strings.HasPrefix(c, "saint ") {
		return []string{c, c}
	}
	rest := strings.TrimPrefix(c, "saint ")
	return []string{c, "st " + rest}
}

func unifySaint(c string) string {
	switch {
	case strings.HasPrefix(c, "saint "):
		return c
	case strings.HasPrefix(c, "st "):
		return "saint " + strings.TrimPrefix(c, "st ")
	default:
		return c
	}
}
