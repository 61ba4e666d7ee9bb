package extract

import (
	"regexp"
	"time"
)

// deathPhrasePattern is a broad synonym set for "died" as obituaries tend to
// phrase it, checked ahead of bare date-range heuristics because an
// explicit death phrase is the most trustworthy signal.
const deathPhrasePattern = `(?i:` +
	`passed away|passed on|died peacefully|died suddenly|died|` +
	`went to be with the lord|went home to be with the lord|went to be with jesus|` +
	`called home|transitioned|entered into eternal rest|entered into rest|` +
	`gained (?:his|her) wings|earned (?:his|her) wings|` +
	`joined (?:his|her) heavenly family|left this world|departed this life|` +
	`went home to be with god)`

var obituaryContextPattern = regexp.MustCompile(`(?i:obituary|death|died|passed|memorial|funeral|visitation|service|survived by|preceded in death|loving memory)`)

var (
	reDeathPhraseDate = regexp.MustCompile(
		deathPhrasePattern + `[^.]{0,40}?(?:on\s+)?(` + monthNamePattern + `)\s+(\d{1,2}),?\s+(\d{4})`)

	reBirthDeathRange = regexp.MustCompile(
		`(` + monthNamePattern + `)\s+(\d{1,2}),\s+(\d{4})\s*[-–—]\s*(` + monthNamePattern + `)\s+(\d{1,2}),\s+(\d{4})`)

	// numeric dates accept two-digit years, expanded with the pivot-50
	// rule by expandYear
	reNumericRange = regexp.MustCompile(
		`\b(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\s*[-–—]\s*(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\b`)

	reYearOnlyRange = regexp.MustCompile(`\b(\d{4})\s*[-–—]\s*(\d{4})\b`)

	reStandaloneMonthDate = regexp.MustCompile(`(` + monthNamePattern + `)\s+(\d{1,2}),?\s+(\d{4})`)
	reStandaloneNumeric   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\b`)

	reMonthDate202X = regexp.MustCompile(`(` + monthNamePattern + `)\s+(\d{1,2}),\s+(202\d)`)
)

// ExtractDOD scans text for a date of death in priority order: explicit
// death-phrase date, birth-death range (second date wins), numeric range
// (second date wins), year-only range (returns January 1 of the second
// year), a standalone date when obituary context is present, and finally
// the last "Month D, 202X" occurrence in the text. Numeric dates may carry
// a two-digit year, expanded with a pivot of 50 (<=50 -> 20YY, >50 ->
// 19YY). now anchors the future-date rejection ("reject future dates
// beyond tomorrow"); callers typically pass time.Now(). Returns
// ("", false) if nothing matches.
func ExtractDOD(text string, now time.Time) (string, bool) {
	if m := reDeathPhraseDate.FindStringSubmatch(text); m != nil {
		if mon, ok := parseMonthName(m[1]); ok {
			if d, y := atoi(m[2]), atoi(m[3]); notTooFarInFuture(y, mon, d, now) {
				return isoDate(y, mon, d), true
			}
		}
	}

	if m := reBirthDeathRange.FindStringSubmatch(text); m != nil {
		// groups: 1=month1 2=day1 3=year1 4=month2 5=day2 6=year2
		if mon, ok := parseMonthName(m[4]); ok {
			if d, y := atoi(m[5]), atoi(m[6]); notTooFarInFuture(y, mon, d, now) {
				return isoDate(y, mon, d), true
			}
		}
	}

	if m := reNumericRange.FindStringSubmatch(text); m != nil {
		// groups: 1=m1 2=d1 3=y1 4=m2 5=d2 6=y2 (second wins)
		mon := time.Month(atoi(m[4]))
		d := atoi(m[5])
		if y, err := expandYear(m[6]); err == nil && mon >= time.January && mon <= time.December && notTooFarInFuture(y, mon, d, now) {
			return isoDate(y, mon, d), true
		}
	}

	if m := reYearOnlyRange.FindStringSubmatch(text); m != nil {
		y := atoi(m[2])
		if notTooFarInFuture(y, time.January, 1, now) {
			return isoDate(y, time.January, 1), true
		}
	}

	if obituaryContextPattern.MatchString(text) {
		if m := reStandaloneMonthDate.FindStringSubmatch(text); m != nil {
			if mon, ok := parseMonthName(m[1]); ok {
				if d, y := atoi(m[2]), atoi(m[3]); notTooFarInFuture(y, mon, d, now) {
					return isoDate(y, mon, d), true
				}
			}
		}
		if m := reStandaloneNumeric.FindStringSubmatch(text); m != nil {
			mon := time.Month(atoi(m[1]))
			d := atoi(m[2])
			if y, err := expandYear(m[3]); err == nil && mon >= time.January && mon <= time.December && notTooFarInFuture(y, mon, d, now) {
				return isoDate(y, mon, d), true
			}
		}
	}

	if all := reMonthDate202X.FindAllStringSubmatch(text, -1); len(all) > 0 {
		last := all[len(all)-1]
		if mon, ok := parseMonthName(last[1]); ok {
			d, y := atoi(last[2]), atoi(last[3])
			if notTooFarInFuture(y, mon, d, now) {
				return isoDate(y, mon, d), true
			}
		}
	}

	return "", false
}
