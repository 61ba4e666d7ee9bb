package extract

import (
	"regexp"
	"strings"
)

// Name is the structured result of the title/snippet/slug name pipeline.
// NameFirst and NameLast may be empty if the pipeline could not confidently
// split the full name.
type Name struct {
	NameFull  string
	NameFirst string
	NameLast  string
}

var (
	reSocialHandle  = regexp.MustCompile(`\(@[\w.]+\)`)
	reSocialBullet  = regexp.MustCompile(`•\s*Instagram`)
	reSocialPipe    = regexp.MustCompile(`(?i)\|\s*Facebook`)
	reSocialOn      = regexp.MustCompile(`(?i)\s+on Instagram`)
	reMemorialSite  = regexp.MustCompile(`(?i)['’]s Memorial Website`)
	reTributeWall   = regexp.MustCompile(`(?i)Tribute Wall`)
	reSmashedDate   = regexp.MustCompile(`([a-z])(` + monthNamePattern + `)\s+\d{1,2},?\s*\d{4}`)
	reSentenceStart = regexp.MustCompile(`(?i)\s*(?:passed away|service information will be).*$`)
	reTrailingCity  = regexp.MustCompile(`,\s*[A-Z][a-zA-Z]+,\s*(?:[A-Z]{2}|[A-Z][a-zA-Z]+)\s*$`)
	reHonorific     = regexp.MustCompile(`^(?:Dr\.?|Mr\.?|Mrs\.?|Ms\.?|Rev\.?|Fr\.?)\s+`)
	rePipeSuffix    = regexp.MustCompile(`\s*\|.*$`)
	reDashSeparator = regexp.MustCompile(`\s+[-–—]\s+.*$`)
	reObituaryWord  = regexp.MustCompile(`(?i)\bObituary\b`)
	reParenDate     = regexp.MustCompile(`\([^)]*\d{4}[^)]*\)`)
	reYearRangeName = regexp.MustCompile(`\b\d{4}\s*[-–—]\s*\d{4}\b`)
	reTrailingAge   = regexp.MustCompile(`,\s*\d{1,3}\s*$`)
	reTrailingDesc  = regexp.MustCompile(`,\s+[a-z][^,]*$`)

	reSuffixToken = regexp.MustCompile(`(?i)^(Jr\.?|Sr\.?|II|III|IV|V|Esq\.?|MD|PhD)$`)
)

var genericLastNames = map[string]bool{
	"videos": true, "website": true, "memorial": true, "obituary": true,
	"photos": true, "images": true, "soon": true, "tribute": true,
	"obituaries": true, "article": true, "page": true, "profile": true,
	"guestbook": true, "condolences": true, "results": true,
}

var genericPhrases = map[string]bool{
	"recent obituaries": true, "full text of": true, "obituaries": true,
	"search results": true, "obituary": true,
}

// ExtractName derives {nameFull, nameFirst, nameLast} from a search hit's
// title, falling back to the snippet, then the URL slug, when the title
// pipeline yields nothing usable. queryLastHint, if non-empty, is the
// normalized last name the caller searched for — used as an anchor for one
// of the snippet fallback patterns.
func ExtractName(title, snippet, urlPath, queryLastHint string) (Name, bool) {
	if n, ok := fromTitle(title); ok {
		return n, true
	}
	if n, ok := fromSnippet(snippet, queryLastHint); ok {
		return n, true
	}
	if n, ok := fromSlug(urlPath); ok {
		return n, true
	}
	return Name{}, false
}

func fromTitle(title string) (Name, bool) {
	s := title
	s = reSocialHandle.ReplaceAllString(s, "")
	s = reSocialBullet.ReplaceAllString(s, "")
	s = reSocialPipe.ReplaceAllString(s, "")
	s = reSocialOn.ReplaceAllString(s, "")
	s = reMemorialSite.ReplaceAllString(s, "")
	s = reTributeWall.ReplaceAllString(s, "")
	s = reSmashedDate.ReplaceAllString(s, "$1")
	s = reSentenceStart.ReplaceAllString(s, "")
	s = reTrailingCity.ReplaceAllString(s, "")
	s = reHonorific.ReplaceAllString(s, "")
	s = rePipeSuffix.ReplaceAllString(s, "")
	s = reDashSeparator.ReplaceAllString(s, "")
	s = reObituaryWord.ReplaceAllString(s, "")
	s = reParenDate.ReplaceAllString(s, "")
	s = reYearRangeName.ReplaceAllString(s, "")
	s = reTrailingAge.ReplaceAllString(s, "")
	s = reTrailingDesc.ReplaceAllString(s, "")
	s = collapseAndTrim(s)

	if isGenericTitle(s) {
		return Name{}, false
	}

	return splitNameTokens(s)
}

func isGenericTitle(s string) bool {
	if s == "" {
		return true
	}
	if genericPhrases[strings.ToLower(s)] {
		return true
	}
	if !hasLetter(s) {
		return true
	}
	if len(strings.Fields(s)) < 2 {
		return true
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// splitNameTokens tokenizes a cleaned name string, pops trailing generation
// or post-nominal suffixes, and picks the first token as the first name and
// the last non-single-letter token as the last name.
func splitNameTokens(s string) (Name, bool) {
	tokens := strings.Fields(s)
	for len(tokens) > 0 && reSuffixToken.MatchString(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) < 2 {
		return Name{}, false
	}

	first := tokens[0]
	last := ""
	for i := len(tokens) - 1; i >= 1; i-- {
		if len([]rune(strings.TrimSuffix(tokens[i], "."))) > 1 {
			last = tokens[i]
			break
		}
	}
	if last == "" {
		return Name{}, false
	}
	if !validLastName(last) {
		return Name{}, false
	}

	return Name{
		NameFull:  strings.Join(tokens, " "),
		NameFirst: first,
		NameLast:  last,
	}, true
}

func validLastName(last string) bool {
	lower := strings.ToLower(last)
	if genericLastNames[lower] {
		return false
	}
	if isAllDigits(last) {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func collapseAndTrim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	reSnippetLastFirst  = regexp.MustCompile(`^([A-Z]+),\s+([A-Z][a-z]+)`)
	reSnippetPassedAway = regexp.MustCompile(`([A-Z][a-z]+)\s+([A-Z][a-z]+)\s+passed away`)
	reSnippetCommaAge   = regexp.MustCompile(`([A-Z][a-z]+)\s+([A-Z][a-z]+),\s*\d{1,3},`)
)

func fromSnippet(snippet, queryLastHint string) (Name, bool) {
	if m := reSnippetLastFirst.FindStringSubmatch(snippet); m != nil {
		last := titleCase(strings.ToLower(m[1]))
		return Name{NameFull: m[2] + " " + last, NameFirst: m[2], NameLast: last}, true
	}
	if m := reSnippetPassedAway.FindStringSubmatch(snippet); m != nil {
		return Name{NameFull: m[1] + " " + m[2], NameFirst: m[1], NameLast: m[2]}, true
	}
	if m := reSnippetCommaAge.FindStringSubmatch(snippet); m != nil {
		return Name{NameFull: m[1] + " " + m[2], NameFirst: m[1], NameLast: m[2]}, true
	}
	if queryLastHint != "" {
		re := regexp.MustCompile(`(?i)([A-Z][a-z]+)\s+(` + regexp.QuoteMeta(queryLastHint) + `)\b`)
		if m := re.FindStringSubmatch(snippet); m != nil {
			return Name{NameFull: m[1] + " " + m[2], NameFirst: m[1], NameLast: m[2]}, true
		}
	}
	return Name{}, false
}

var reObitSlug = regexp.MustCompile(`(?i)(?:obituaries|obituary|obits|tribute)/([a-z0-9-]+)`)

func fromSlug(urlPath string) (Name, bool) {
	m := reObitSlug.FindStringSubmatch(urlPath)
	if m == nil {
		return Name{}, false
	}
	parts := strings.Split(m[1], "-")
	parts = filterEmpty(parts)
	if len(parts) < 2 {
		return Name{}, false
	}
	for i, p := range parts {
		parts[i] = titleCase(p)
	}
	first := parts[0]
	last := parts[len(parts)-1]
	return Name{NameFull: strings.Join(parts, " "), NameFirst: first, NameLast: last}, true
}

func filterEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
