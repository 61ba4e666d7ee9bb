package service

import (
	"context"
	"testing"
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/modkit/repokit"

	excldom "obitwatch/internal/services/exclusions/domain"
	"obitwatch/internal/services/savedsearch/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

// memRepo is an in-memory StorageRepo for lifecycle tests
type memRepo struct {
	searches map[string]domain.SavedSearch
	results  map[string]domain.Result
}

func newMemRepo() *memRepo {
	return &memRepo{searches: map[string]domain.SavedSearch{}, results: map[string]domain.Result{}}
}

func (m *memRepo) InsertSearch(_ context.Context, s domain.SavedSearch) (domain.SavedSearch, error) {
	m.searches[s.ID] = s
	return s, nil
}

func (m *memRepo) GetSearch(_ context.Context, id string) (domain.SavedSearch, bool, error) {
	s, ok := m.searches[id]
	return s, ok, nil
}

func (m *memRepo) ListByLogin(_ context.Context, loginID string) ([]domain.SavedSearch, error) {
	var out []domain.SavedSearch
	for _, s := range m.searches {
		if s.LoginID == loginID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) ListActive(context.Context) ([]domain.SavedSearch, error) {
	var out []domain.SavedSearch
	for _, s := range m.searches {
		if !s.Disabled && !s.Confirmed {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateSearch(_ context.Context, s domain.SavedSearch) error {
	cur := m.searches[s.ID]
	s.Confirmed, s.ConfirmedAt = cur.Confirmed, cur.ConfirmedAt
	m.searches[s.ID] = s
	return nil
}

func (m *memRepo) DisableSearch(_ context.Context, id string) error {
	s := m.searches[id]
	s.Disabled = true
	m.searches[id] = s
	return nil
}

func (m *memRepo) MarkConfirmed(_ context.Context, id string, at time.Time) error {
	s := m.searches[id]
	s.Confirmed, s.Disabled, s.ConfirmedAt = true, true, &at
	m.searches[id] = s
	return nil
}

func (m *memRepo) UpdateSearchKey(_ context.Context, id, key string) error {
	s := m.searches[id]
	s.SearchKey = key
	m.searches[id] = s
	return nil
}

func (m *memRepo) ExistingFingerprints(_ context.Context, qid string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, r := range m.results {
		if r.UserQueryID == qid {
			out[r.Fingerprint] = true
		}
	}
	return out, nil
}

func (m *memRepo) InsertResults(_ context.Context, qid string, ranDt time.Time, cs []searchdom.Candidate) error {
	for _, c := range cs {
		c.Status = searchdom.StatusPending
		c.RanDt = ranDt
		m.results[c.ID] = domain.Result{Candidate: c, UserQueryID: qid}
	}
	return nil
}

func (m *memRepo) GetResult(_ context.Context, id string) (domain.Result, bool, error) {
	r, ok := m.results[id]
	return r, ok, nil
}

func (m *memRepo) ListResults(_ context.Context, qid string) ([]domain.Result, error) {
	var out []domain.Result
	for _, r := range m.results {
		if r.UserQueryID == qid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) MarkAllRead(_ context.Context, qid string) (int, error) {
	n := 0
	for id, r := range m.results {
		if r.UserQueryID == qid && r.Status == searchdom.StatusPending && !r.IsRead {
			r.IsRead = true
			m.results[id] = r
			n++
		}
	}
	return n, nil
}

func (m *memRepo) SetResultStatus(_ context.Context, id string, st searchdom.Status, isRead bool) error {
	r := m.results[id]
	r.Status, r.IsRead = st, isRead
	m.results[id] = r
	return nil
}

func (m *memRepo) NullStaleImageURLs(context.Context) (int, error) { return 0, nil }
func (m *memRepo) UnreadPendingByUser(context.Context) ([]domain.UserUnread, error) {
	return nil, nil
}
func (m *memRepo) SummariesByLogin(context.Context, string) ([]domain.SearchSummary, error) {
	return nil, nil
}

type memBinder struct{ r *memRepo }

func (b memBinder) Bind(repokit.Queryer) domain.StorageRepo { return b.r }

type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (nopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(nopTx{}) }

// memExclusions records Add/RemoveMatching calls
type memExclusions struct {
	added   []excldom.AddInput
	removed [][2]string
}

func (m *memExclusions) Add(_ context.Context, in excldom.AddInput) (excldom.Exclusion, bool, error) {
	m.added = append(m.added, in)
	return excldom.Exclusion{}, true, nil
}

func (m *memExclusions) RemoveMatching(_ context.Context, key, fp string) (bool, error) {
	m.removed = append(m.removed, [2]string{key, fp})
	return true, nil
}

func fixture(t *testing.T) (*Svc, *memRepo, *memExclusions, domain.SavedSearch, domain.Result) {
	t.Helper()
	repo := newMemRepo()
	excl := &memExclusions{}
	svc := New(nopTx{}, memBinder{repo}, excl, normalize.New())

	age := 71
	search, err := svc.Create(context.Background(), domain.CreateInput{
		LoginID: "u1", FirstName: "Jim", LastName: "Smith", City: "Hamilton", State: "OH", Age: &age,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ranDt := time.Date(2026, 1, 20, 16, 0, 0, 0, time.UTC)
	cands := []searchdom.Candidate{
		{ID: "r1", NameFull: "James Smith", Fingerprint: "smith-j-hamilton-oh-2026-01-15", URL: "https://example.com/obit/james-smith", Rank: 1},
		{ID: "r2", NameFull: "Jim Smith", Fingerprint: "smith-j-cincinnati-oh-2026-01-10", URL: "https://example.com/obit/jim-smith", Rank: 2},
	}
	if err := repo.InsertResults(context.Background(), search.ID, ranDt, cands); err != nil {
		t.Fatalf("InsertResults: %v", err)
	}
	return svc, repo, excl, search, repo.results["r1"]
}

func TestCreateComputesDeterministicKey(t *testing.T) {
	repo := newMemRepo()
	svc := New(nopTx{}, memBinder{repo}, nil, normalize.New())
	age := 71

	a, err := svc.Create(context.Background(), domain.CreateInput{
		LoginID: "u1", FirstName: "James", LastName: "Smith", City: "Hamilton", State: "OH", Age: &age,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := svc.Create(context.Background(), domain.CreateInput{
		LoginID: "u1", FirstName: "JAMES", LastName: "smith", City: "hamilton", State: "oh", Age: &age,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.SearchKey == "" || len(a.SearchKey) != 16 {
		t.Fatalf("key = %q, want 16 hex chars", a.SearchKey)
	}
	if a.SearchKey != b.SearchKey {
		t.Errorf("case variants should share a key: %q vs %q", a.SearchKey, b.SearchKey)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(nopTx{}, memBinder{newMemRepo()}, nil, normalize.New())
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.CreateInput{LoginID: "u1", FirstName: "Jim"}); err == nil {
		t.Error("want error without lastName")
	}
	if _, err := svc.Create(ctx, domain.CreateInput{LoginID: "u1", LastName: "Smith"}); err == nil {
		t.Error("want error without firstName or nickname")
	}
	future := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	if _, err := svc.Create(ctx, domain.CreateInput{LoginID: "u1", FirstName: "Jim", LastName: "Smith", InputDate: future}); err == nil {
		t.Error("want error for future inputDate")
	}
	// nickname alone satisfies the first-or-nickname rule
	if _, err := svc.Create(ctx, domain.CreateInput{LoginID: "u1", Nickname: "Jim", LastName: "Smith"}); err != nil {
		t.Errorf("nickname-only create should pass: %v", err)
	}
}

func TestConfirmFreezesSearch(t *testing.T) {
	svc, repo, _, search, res := fixture(t)
	ctx := context.Background()

	if err := svc.Confirm(ctx, "u1", search.ID, res.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	got := repo.results[res.ID]
	if got.Status != searchdom.StatusConfirmed || !got.IsRead {
		t.Errorf("result = %+v, want confirmed+read", got.Candidate)
	}
	s := repo.searches[search.ID]
	if !s.Confirmed || !s.Disabled || s.ConfirmedAt == nil {
		t.Errorf("search not frozen: confirmed=%v disabled=%v at=%v", s.Confirmed, s.Disabled, s.ConfirmedAt)
	}

	// the second, still-pending result is untouched
	if repo.results["r2"].Status != searchdom.StatusPending {
		t.Errorf("sibling result mutated: %v", repo.results["r2"].Status)
	}

	// a frozen search refuses edits
	if _, err := svc.Update(ctx, "u1", search.ID, domain.UpdateInput{FirstName: "Jim", LastName: "Smith"}); err == nil {
		t.Error("want edit refusal on a confirmed search")
	}
}

func TestRejectRoutesIntoExclusions(t *testing.T) {
	svc, repo, excl, search, res := fixture(t)
	ctx := context.Background()

	if err := svc.Reject(ctx, "u1", search.ID, res.ID, ""); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if got := repo.results[res.ID]; got.Status != searchdom.StatusRejected || !got.IsRead {
		t.Errorf("result = %v read=%v, want rejected+read", got.Status, got.IsRead)
	}
	if len(excl.added) != 1 {
		t.Fatalf("exclusions added = %d, want 1", len(excl.added))
	}
	in := excl.added[0]
	if in.SearchKey != search.SearchKey || in.Fingerprint != res.Fingerprint || in.URL != res.URL {
		t.Errorf("exclusion input = %+v", in)
	}
	if in.Reason != "wrong person" {
		t.Errorf("default reason = %q, want wrong person", in.Reason)
	}
}

func TestRestoreRemovesMatchingExclusion(t *testing.T) {
	svc, repo, excl, search, res := fixture(t)
	ctx := context.Background()

	if err := svc.Reject(ctx, "u1", search.ID, res.ID, "not them"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if err := svc.Restore(ctx, "u1", search.ID, res.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := repo.results[res.ID]; got.Status != searchdom.StatusPending {
		t.Errorf("status = %v, want pending", got.Status)
	}
	if len(excl.removed) != 1 || excl.removed[0] != [2]string{search.SearchKey, res.Fingerprint} {
		t.Errorf("removed = %v", excl.removed)
	}
}

func TestMarkReadTouchesOnlyPendingUnread(t *testing.T) {
	svc, repo, _, search, res := fixture(t)
	ctx := context.Background()

	if err := svc.Reject(ctx, "u1", search.ID, res.ID, ""); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	n, err := svc.MarkRead(ctx, "u1", search.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if n != 1 {
		t.Errorf("marked = %d, want 1 (only the pending unread sibling)", n)
	}
}

func TestOwnershipScoping(t *testing.T) {
	svc, _, _, search, res := fixture(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "intruder", search.ID); err == nil {
		t.Error("foreign login should not see the search")
	}
	if err := svc.Confirm(ctx, "intruder", search.ID, res.ID); err == nil {
		t.Error("foreign login should not confirm")
	}
}
