package extract

import "regexp"

var (
	reAgeKeyword  = regexp.MustCompile(`(?i:aged?)\s+(\d{1,3})\b`)
	reAgeYearsOld = regexp.MustCompile(`\b(\d{1,3})\s+years?\s+old\b`)
	reAgeComma    = regexp.MustCompile(`,\s*(\d{1,3}),`)
)

// ExtractAge scans text for an age, trying "age[d] NN", then "NN year[s]
// old", then the bare comma form ", NN,". The comma form is bounded to
// 18-120 (it is the weakest signal — loose enough to catch a birth year or
// street number otherwise); the other two forms are bounded 0-120.
func ExtractAge(text string) (int, bool) {
	if m := reAgeKeyword.FindStringSubmatch(text); m != nil {
		if n := atoi(m[1]); n >= 0 && n <= 120 {
			return n, true
		}
	}
	if m := reAgeYearsOld.FindStringSubmatch(text); m != nil {
		if n := atoi(m[1]); n >= 0 && n <= 120 {
			return n, true
		}
	}
	if m := reAgeComma.FindStringSubmatch(text); m != nil {
		if n := atoi(m[1]); n >= 18 && n <= 120 {
			return n, true
		}
	}
	return 0, false
}
