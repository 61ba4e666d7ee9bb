package service

import (
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/core/score"
	"obitwatch/internal/services/search/domain"
)

// scoreCandidate computes the full five-or-six criterion breakdown
// for one candidate against the query that produced it. q's fields are
// assumed already normalized by the caller; c's name/city/state fields are
// normalized here since candidates arrive straight out of extraction and
// carry whatever casing the source page used. It is called twice in the
// pipeline: once per raw candidate inside dedup (as the "provisional score"
// used to pick a winner within a fingerprint group) and once per survivor
// in the scoring stage proper. Both calls are the same pure function;
// nothing here is dedup-specific.
func scoreCandidate(q domain.Query, c domain.Candidate, norm *normalize.Normalizer, now time.Time) domain.ScoreBreakdown {
	candLast := norm.Name(c.NameLast)
	candFirst := norm.Name(c.NameFirst)
	candCity := norm.City(c.City)
	candState := norm.State(c.State)

	last := score.LastName(q.LastName, candLast)
	first := score.FirstName(q.FirstName, candFirst, norm)
	st := score.State(q.State, candState)
	city := score.City(q.City, candCity, q.State, candState)
	age := score.Age(q.Age, q.InputDate, c.Age, now)

	var keywords *int
	if len(q.Keywords) > 0 {
		keywords = score.Keywords(q.Keywords, c.Snippet, c.SourceLabel)
	}

	b := score.Sum(last, first, st, city, age, keywords)
	return domain.ScoreBreakdown{
		LastName: last,
		First:    first,
		State:    st,
		City:     city,
		Age:      age,
		Keywords: keywords,

		ScoreFinal:  b.ScoreFinal,
		ScoreMax:    b.ScoreMax,
		CriteriaCnt: b.CriteriaCnt,
	}
}
