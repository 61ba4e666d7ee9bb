package extract

import (
	"regexp"
	"time"
)

const visitationPhrasePattern = `(?i:visitation|viewing|calling hours|friends may call)`
const funeralPhrasePattern = `(?i:funeral|memorial service|celebration of life|graveside|burial|interment)`

// serviceMonthDay matches "Month D" with an optional ", YYYY" year.
var serviceMonthDay = regexp.MustCompile(`(` + monthNamePattern + `)\s+(\d{1,2})(?:,?\s+(\d{4}))?`)

// ServiceDates holds the optional visitation and funeral dates recovered
// from a body of text. Either may be empty.
type ServiceDates struct {
	Visitation string
	Funeral    string
}

// ExtractServiceDates scans text for visitation and funeral dates. For each,
// it looks for the relevant keyword group followed by a month/day (with
// optional year). When the year is absent and dod is non-empty, the year is
// inferred by InferYear.
func ExtractServiceDates(text string, dod string) ServiceDates {
	return ServiceDates{
		Visitation: findServiceDate(text, visitationPhrasePattern, dod),
		Funeral:    findServiceDate(text, funeralPhrasePattern, dod),
	}
}

func findServiceDate(text, phrasePattern, dod string) string {
	re := regexp.MustCompile(phrasePattern + `[^.]{0,60}?` + serviceMonthDay.String())
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	mon, ok := parseMonthName(m[1])
	if !ok {
		return ""
	}
	day := atoi(m[2])
	if m[3] != "" {
		year := atoi(m[3])
		return isoDate(year, mon, day)
	}
	if dod == "" {
		return ""
	}
	return InferYear(m[1], m[2], dod)
}

// InferYear places a service date (month name, day) into the year of dod
// (an ISO YYYY-MM-DD string), then advances to the next year iff the
// (month, day) of the service is strictly earlier than the (month, day) of
// dod — the year-end cusp, e.g. a death on Dec 29 with a funeral announced
// for "January 4" means the following January. Returns "" if dod or the
// month name can't be parsed.
func InferYear(monthName, dayStr, dod string) string {
	mon, ok := parseMonthName(monthName)
	if !ok {
		return ""
	}
	day := atoi(dayStr)
	dodTime, err := time.Parse("2006-01-02", dod)
	if err != nil {
		return ""
	}
	year := dodTime.Year()
	if monthDayBefore(mon, day, dodTime.Month(), dodTime.Day()) {
		year++
	}
	return isoDate(year, mon, day)
}

func monthDayBefore(m1 time.Month, d1 int, m2 time.Month, d2 int) bool {
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
