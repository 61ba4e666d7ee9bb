package service

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries become newlines in the flattened
// text so date phrases in adjacent blocks do not smash together.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"blockquote": true, "table": true, "ul": true, "ol": true,
}

// skipTags are subtrees dropped entirely.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "head": true,
}

// Flatten converts raw HTML to plain text: script/style subtrees dropped,
// block-level boundaries rendered as newlines, entities decoded by the
// tokenizer, runs of blank space collapsed.
func Flatten(rawHTML string) string {
	z := html.NewTokenizer(strings.NewReader(rawHTML))

	var b strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapse(b.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipTags[tag] && tt == html.StartTagToken {
				skipDepth++
				continue
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipTags[tag] && skipDepth > 0 {
				skipDepth--
				continue
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			b.Write(z.Text())
		}
	}
}

// collapse trims each line and squeezes runs of blank lines and spaces.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.Join(strings.Fields(ln), " ")
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
