// Package repo provides postgres access for saved searches and results
package repo

import (
	"context"
	"time"

	"obitwatch/internal/modkit/repokit"

	"obitwatch/internal/services/savedsearch/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

const searchCols = `
id::text, login_id::text,
name_first, name_last, COALESCE(name_middle, ''), COALESCE(nickname, ''),
COALESCE(city, ''), COALESCE(state, ''), age, COALESCE(key_words, ''),
input_date, COALESCE(search_key, ''),
disabled, confirmed, confirmed_at, created_at`

// InsertSearch persists a new user_query row
func (s *pg) InsertSearch(ctx context.Context, row domain.SavedSearch) (domain.SavedSearch, error) {
	_, err := s.q.Exec(ctx, `
		INSERT INTO user_query
			(id, login_id, name_first, name_last, name_middle, nickname,
			 city, state, age, key_words, input_date, search_key,
			 disabled, confirmed, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''),
			NULLIF($7,''), NULLIF($8,''), $9, NULLIF($10,''), $11, $12,
			FALSE, FALSE, $13)`,
		row.ID, row.LoginID, row.FirstName, row.LastName, row.MiddleName, row.Nickname,
		row.City, row.State, row.Age, row.Keywords, row.InputDate, row.SearchKey,
		row.CreatedAt,
	)
	return row, err
}

// GetSearch returns one user_query row by id
func (s *pg) GetSearch(ctx context.Context, id string) (domain.SavedSearch, bool, error) {
	rows, err := s.q.Query(ctx, `SELECT `+searchCols+` FROM user_query WHERE id = $1`, id)
	if err != nil {
		return domain.SavedSearch{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.SavedSearch{}, false, rows.Err()
	}
	row, err := scanSearch(rows)
	return row, err == nil, err
}

// ListByLogin returns a user's saved searches, newest first
func (s *pg) ListByLogin(ctx context.Context, loginID string) ([]domain.SavedSearch, error) {
	return s.listSearches(ctx, `
		SELECT `+searchCols+` FROM user_query
		WHERE login_id = $1
		ORDER BY created_at DESC`, loginID)
}

// ListActive returns every sweepable search in creation order
func (s *pg) ListActive(ctx context.Context) ([]domain.SavedSearch, error) {
	return s.listSearches(ctx, `
		SELECT `+searchCols+` FROM user_query
		WHERE NOT disabled AND NOT confirmed
		ORDER BY created_at ASC`)
}

// UpdateSearch replaces the person fields of a user_query row
func (s *pg) UpdateSearch(ctx context.Context, row domain.SavedSearch) error {
	_, err := s.q.Exec(ctx, `
		UPDATE user_query SET
			name_first = $2, name_last = $3, name_middle = NULLIF($4,''),
			nickname = NULLIF($5,''), city = NULLIF($6,''), state = NULLIF($7,''),
			age = $8, key_words = NULLIF($9,''), input_date = $10, search_key = $11
		WHERE id = $1`,
		row.ID, row.FirstName, row.LastName, row.MiddleName,
		row.Nickname, row.City, row.State,
		row.Age, row.Keywords, row.InputDate, row.SearchKey,
	)
	return err
}

// DisableSearch soft-deletes a user_query row
func (s *pg) DisableSearch(ctx context.Context, id string) error {
	_, err := s.q.Exec(ctx, `UPDATE user_query SET disabled = TRUE WHERE id = $1`, id)
	return err
}

// MarkConfirmed freezes a search: confirmed, stamped, disabled
func (s *pg) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	_, err := s.q.Exec(ctx, `
		UPDATE user_query
		SET confirmed = TRUE, confirmed_at = $2, disabled = TRUE
		WHERE id = $1`, id, at.UTC())
	return err
}

// UpdateSearchKey records the engine-computed key when it drifts from the
// stored one
func (s *pg) UpdateSearchKey(ctx context.Context, id, searchKey string) error {
	_, err := s.q.Exec(ctx, `UPDATE user_query SET search_key = $2 WHERE id = $1`, id, searchKey)
	return err
}

func (s *pg) listSearches(ctx context.Context, sql string, args ...any) ([]domain.SavedSearch, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SavedSearch
	for rows.Next() {
		row, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanSearch(r scanner) (domain.SavedSearch, error) {
	var row domain.SavedSearch
	var inputDate, confirmedAt *time.Time
	if err := r.Scan(
		&row.ID, &row.LoginID,
		&row.FirstName, &row.LastName, &row.MiddleName, &row.Nickname,
		&row.City, &row.State, &row.Age, &row.Keywords,
		&inputDate, &row.SearchKey,
		&row.Disabled, &row.Confirmed, &confirmedAt, &row.CreatedAt,
	); err != nil {
		return domain.SavedSearch{}, err
	}
	row.InputDate = inputDate
	row.ConfirmedAt = confirmedAt
	return row, nil
}

// result scanning shares its column list with the reads below

const resultCols = `
id::text, user_query_id::text,
COALESCE(name_full, ''), COALESCE(name_first, ''), COALESCE(name_last, ''),
age, COALESCE(dod, ''), COALESCE(city, ''), COALESCE(state, ''),
COALESCE(source_label, ''), COALESCE(url, ''), COALESCE(snippet, ''),
COALESCE(provider, ''), COALESCE(image_url, ''),
COALESCE(date_visitation, ''), COALESCE(date_funeral, ''),
fingerprint,
score_final, score_max, criteria_cnt, rank,
is_read, status::text, ran_dt`

// ExistingFingerprints returns every fingerprint already recorded for a
// saved search across all prior ran_dt values
func (s *pg) ExistingFingerprints(ctx context.Context, userQueryID string) (map[string]bool, error) {
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT fingerprint FROM user_result WHERE user_query_id = $1`, userQueryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		out[fp] = true
	}
	return out, rows.Err()
}

// InsertResults persists newly-ranked results for one ran_dt, in rank
// order. Each row is its own statement; fingerprints the caller already
// filtered are not re-checked here.
func (s *pg) InsertResults(ctx context.Context, userQueryID string, ranDt time.Time, results []searchdom.Candidate) error {
	for _, c := range results {
		if _, err := s.q.Exec(ctx, `
			INSERT INTO user_result
				(id, user_query_id, name_full, name_first, name_last,
				 age, dod, city, state,
				 source_label, url, snippet, provider, image_url,
				 date_visitation, date_funeral, fingerprint,
				 score_final, score_max, criteria_cnt, rank,
				 is_read, status, ran_dt)
			VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''),
				$6, NULLIF($7,''), NULLIF($8,''), NULLIF($9,''),
				NULLIF($10,''), NULLIF($11,''), NULLIF($12,''), $13, NULLIF($14,''),
				NULLIF($15,''), NULLIF($16,''), $17,
				$18, $19, $20, $21,
				FALSE, 'pending', $22)`,
			c.ID, userQueryID, c.NameFull, c.NameFirst, c.NameLast,
			c.Age, c.DOD, c.City, c.State,
			c.SourceLabel, c.URL, c.Snippet, string(c.Provider), c.ImageURL,
			c.Visitation, c.Funeral, c.Fingerprint,
			c.Score.ScoreFinal, c.Score.ScoreMax, c.Score.CriteriaCnt, c.Rank,
			ranDt.UTC(),
		); err != nil {
			return err
		}
	}
	return nil
}

// GetResult returns one user_result row by id
func (s *pg) GetResult(ctx context.Context, id string) (domain.Result, bool, error) {
	rows, err := s.q.Query(ctx, `SELECT `+resultCols+` FROM user_result WHERE id = $1`, id)
	if err != nil {
		return domain.Result{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Result{}, false, rows.Err()
	}
	res, err := scanResult(rows)
	return res, err == nil, err
}

// ListResults returns a search's results, current sweep first, rank order
func (s *pg) ListResults(ctx context.Context, userQueryID string) ([]domain.Result, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+resultCols+` FROM user_result
		WHERE user_query_id = $1
		ORDER BY ran_dt DESC, rank ASC`, userQueryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// MarkAllRead flips every pending unread result of the search
func (s *pg) MarkAllRead(ctx context.Context, userQueryID string) (int, error) {
	tag, err := s.q.Exec(ctx, `
		UPDATE user_result SET is_read = TRUE
		WHERE user_query_id = $1 AND status = 'pending' AND NOT is_read`, userQueryID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// SetResultStatus moves one result through the lifecycle
func (s *pg) SetResultStatus(ctx context.Context, id string, status searchdom.Status, isRead bool) error {
	_, err := s.q.Exec(ctx, `
		UPDATE user_result SET status = $2, is_read = $3 WHERE id = $1`,
		id, string(status), isRead)
	return err
}

// NullStaleImageURLs clears image metadata on every result whose ran_dt
// predates its search's most recent sweep, so only the current snapshot
// keeps full image rows
func (s *pg) NullStaleImageURLs(ctx context.Context) (int, error) {
	tag, err := s.q.Exec(ctx, `
		UPDATE user_result r SET image_url = NULL
		WHERE image_url IS NOT NULL
		  AND ran_dt < (SELECT max(ran_dt) FROM user_result r2 WHERE r2.user_query_id = r.user_query_id)`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// UnreadPendingByUser groups active searches with unread pending results
// by owner for the notification hand-off
func (s *pg) UnreadPendingByUser(ctx context.Context) ([]domain.UserUnread, error) {
	rows, err := s.q.Query(ctx, `
		SELECT q.login_id::text, q.id::text,
		       trim(q.name_first || ' ' || q.name_last),
		       count(*) FILTER (WHERE r.status = 'pending'),
		       count(*) FILTER (WHERE r.status = 'pending' AND NOT r.is_read),
		       to_char(max(r.ran_dt) AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM user_query q
		JOIN user_result r ON r.user_query_id = q.id
		WHERE NOT q.disabled
		GROUP BY q.login_id, q.id, q.name_first, q.name_last
		HAVING count(*) FILTER (WHERE r.status = 'pending' AND NOT r.is_read) > 0
		ORDER BY q.login_id, q.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserUnread
	for rows.Next() {
		var loginID string
		var sum domain.SearchSummary
		if err := rows.Scan(&loginID, &sum.SearchID, &sum.PersonName, &sum.Pending, &sum.Unread, &sum.LastRanDt); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].LoginID != loginID {
			out = append(out, domain.UserUnread{LoginID: loginID})
		}
		out[len(out)-1].Searches = append(out[len(out)-1].Searches, sum)
	}
	return out, rows.Err()
}

// SummariesByLogin is the per-user match overview
func (s *pg) SummariesByLogin(ctx context.Context, loginID string) ([]domain.SearchSummary, error) {
	rows, err := s.q.Query(ctx, `
		SELECT q.id::text,
		       trim(q.name_first || ' ' || q.name_last),
		       count(r.id) FILTER (WHERE r.status = 'pending'),
		       count(r.id) FILTER (WHERE r.status = 'pending' AND NOT r.is_read),
		       q.confirmed,
		       COALESCE(to_char(max(r.ran_dt) AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), '')
		FROM user_query q
		LEFT JOIN user_result r ON r.user_query_id = q.id
		WHERE q.login_id = $1
		GROUP BY q.id, q.name_first, q.name_last, q.confirmed
		ORDER BY max(r.ran_dt) DESC NULLS LAST, q.created_at DESC`, loginID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SearchSummary
	for rows.Next() {
		var sum domain.SearchSummary
		if err := rows.Scan(&sum.SearchID, &sum.PersonName, &sum.Pending, &sum.Unread, &sum.Confirmed, &sum.LastRanDt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func scanResult(r scanner) (domain.Result, error) {
	var res domain.Result
	var provider, status string
	var ranDt time.Time
	if err := r.Scan(
		&res.ID, &res.UserQueryID,
		&res.NameFull, &res.NameFirst, &res.NameLast,
		&res.Age, &res.DOD, &res.City, &res.State,
		&res.SourceLabel, &res.URL, &res.Snippet,
		&provider, &res.ImageURL,
		&res.Visitation, &res.Funeral,
		&res.Fingerprint,
		&res.Score.ScoreFinal, &res.Score.ScoreMax, &res.Score.CriteriaCnt, &res.Rank,
		&res.IsRead, &status, &ranDt,
	); err != nil {
		return domain.Result{}, err
	}
	res.Provider = searchdom.ProviderType(provider)
	res.Status = searchdom.Status(status)
	res.RanDt = ranDt.UTC()
	return res, nil
}
