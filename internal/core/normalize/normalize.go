// Package normalize canonicalizes the free-text fields of a person query and
// of candidates extracted from search results: names, cities, states,
// keywords, and nickname groups.
//
// Pipeline order for the shared base pass:
// 1 UTF-8 repair, drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and other format characters
// 5 Width fold fullwidth forms to ASCII
// 6 Collapse whitespace to single spaces and trim
//
// Diacritics are left as normalized Unicode (NFKC composes them; nothing
// downstream strips combining marks) so names like "José" survive intact.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer canonicalizes query and candidate free-text fields. It is
// concurrency safe: the shared state is the pooled transformer chain and
// the nickname index, which guards itself with a mutex.
type Normalizer struct {
	nicknames *nicknameIndex
}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Cf)), // strip format chars: ZWJ, ZWNJ, BOM, ...
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// New constructs a Normalizer seeded with the static nickname groups.
func New() *Normalizer {
	return &Normalizer{nicknames: newNicknameIndex(seedNicknames)}
}

// base runs the shared Unicode pipeline and collapses whitespace. It does not
// touch punctuation; callers strip what they need for their own field.
func (n *Normalizer) base(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// Name lowercases, trims, collapses whitespace, and removes punctuation
// except an internal hyphen (so "Gonzalez-Irizarry" survives but "O'Brien"
// becomes "obrien"). Diacritics are left as normalized Unicode.
func (n *Normalizer) Name(s string) string {
	return collapseSpaces(stripPunct(n.base(s), true))
}

// Keyword normalizes a single free-text keyword the same way as Name but
// without the hyphen carve-out; callers usually want Keywords instead.
func (n *Normalizer) Keyword(s string) string {
	return collapseSpaces(stripPunct(n.base(s), false))
}

// Keywords splits a comma-separated list, lowercases, trims, and drops
// empties. A list that reduces to nothing returns nil (treated as absent).
func (n *Normalizer) Keywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		kw := n.Keyword(p)
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripPunct removes ASCII/Unicode punctuation, keeping letters, digits,
// whitespace, and (when keepHyphen) an internal hyphen.
func stripPunct(s string, keepHyphen bool) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' && keepHyphen && i > 0 && i < len(runes)-1:
			b.WriteRune(r)
		default:
			// drop: punctuation, symbols, leading/trailing hyphens
		}
	}
	return b.String()
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
// the result. It does not preserve newlines: every normalized field here
// is single-line.
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
