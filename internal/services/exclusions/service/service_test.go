package service

import (
	"context"
	"testing"

	"obitwatch/internal/modkit/repokit"
	searchdom "obitwatch/internal/services/search/domain"

	"obitwatch/internal/services/exclusions/domain"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://Example.com/Obit/john-smith/", "example.com/Obit/john-smith"},
		{"http://example.com/obit", "example.com/obit"},
		{"example.com/obit/", "example.com/obit"},
		{"HTTPS://EXAMPLE.COM/", "example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeURL(c.in); got != c.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeURLEqualAcrossSchemes(t *testing.T) {
	a := NormalizeURL("https://legacy.com/us/obituaries/name/john-smith")
	b := NormalizeURL("http://Legacy.com/us/obituaries/name/john-smith/")
	if a != b {
		t.Fatalf("want scheme/slash variants equal, got %q vs %q", a, b)
	}
}

func TestDODUnknown(t *testing.T) {
	if !DODUnknown("fagan-m-unknown-ca-unknown") {
		t.Error("trailing unknown should read as DOD-unknown")
	}
	if DODUnknown("smith-j-hamilton-oh-2024-01-15") {
		t.Error("dated fingerprint misread as DOD-unknown")
	}
}

// fakeRepo is an in-memory StorageRepo for filter tests
type fakeRepo struct {
	perQuery map[string][]domain.Exclusion
	global   []domain.Exclusion
}

func (f *fakeRepo) Insert(_ context.Context, x domain.Exclusion) (domain.Exclusion, bool, error) {
	if x.Scope == domain.ScopeGlobal {
		f.global = append(f.global, x)
	} else {
		if f.perQuery == nil {
			f.perQuery = map[string][]domain.Exclusion{}
		}
		f.perQuery[x.SearchKey] = append(f.perQuery[x.SearchKey], x)
	}
	return x, true, nil
}

func (f *fakeRepo) Delete(context.Context, string) (bool, error) { return false, nil }

func (f *fakeRepo) FindMatching(_ context.Context, key, fp string) (domain.Exclusion, bool, error) {
	for _, x := range f.perQuery[key] {
		if x.Fingerprint == fp {
			return x, true, nil
		}
	}
	return domain.Exclusion{}, false, nil
}

func (f *fakeRepo) ForSearchKey(_ context.Context, key string) ([]domain.Exclusion, error) {
	return f.perQuery[key], nil
}
func (f *fakeRepo) Global(context.Context) ([]domain.Exclusion, error) { return f.global, nil }
func (f *fakeRepo) All(context.Context) ([]domain.Exclusion, error)   { return nil, nil }
func (f *fakeRepo) Stats(context.Context) (domain.Stats, error)       { return domain.Stats{}, nil }

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(repokit.Queryer) domain.StorageRepo { return b.r }

// nopTx satisfies repokit.TxRunner for tests that never reach SQL
type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (nopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(nopTx{}) }

func newSvc(r *fakeRepo) *Svc { return &Svc{binder: fakeBinder{r}, db: nopTx{}} }

func TestAddScopeValidation(t *testing.T) {
	s := newSvc(&fakeRepo{})
	ctx := context.Background()

	if _, _, err := s.Add(ctx, domain.AddInput{}); err == nil {
		t.Error("want error when neither fingerprint nor url present")
	}
	if _, _, err := s.Add(ctx, domain.AddInput{Scope: domain.ScopePerQuery, Fingerprint: "x"}); err == nil {
		t.Error("want error for per-query scope without searchKey")
	}
	if _, _, err := s.Add(ctx, domain.AddInput{Scope: domain.ScopeGlobal, SearchKey: "aaaabbbbccccdddd", Fingerprint: "x"}); err == nil {
		t.Error("want error for global scope carrying searchKey")
	}

	// scope inference
	x, isNew, err := s.Add(ctx, domain.AddInput{SearchKey: "aaaabbbbccccdddd", Fingerprint: "Smith-J-Cincinnati-OH-2024-01-15"})
	if err != nil || !isNew {
		t.Fatalf("Add: %v isNew=%v", err, isNew)
	}
	if x.Scope != domain.ScopePerQuery {
		t.Errorf("scope = %q, want per-query", x.Scope)
	}
	if x.Fingerprint != "smith-j-cincinnati-oh-2024-01-15" {
		t.Errorf("fingerprint not lowercased: %q", x.Fingerprint)
	}
}

func TestIsExcludedSemantics(t *testing.T) {
	const key = "aaaabbbbccccdddd"
	r := &fakeRepo{}
	s := newSvc(r)
	ctx := context.Background()

	// dated fingerprint rule: fires on fingerprint alone
	_, _, _ = s.Add(ctx, domain.AddInput{SearchKey: key, Fingerprint: "smith-j-cincinnati-oh-2024-01-15"})
	// DOD-unknown fingerprint rule paired with a URL
	_, _, _ = s.Add(ctx, domain.AddInput{SearchKey: key, Fingerprint: "fagan-m-unknown-ca-unknown", URL: "https://example.com/obit/m-fagan"})

	check := func(c searchdom.Candidate, want bool, label string) {
		t.Helper()
		got, err := s.IsExcluded(ctx, key, c)
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
		if got != want {
			t.Errorf("%s: IsExcluded = %v, want %v", label, got, want)
		}
	}

	check(searchdom.Candidate{Fingerprint: "smith-j-cincinnati-oh-2024-01-15"}, true, "dated fingerprint match")
	check(searchdom.Candidate{Fingerprint: "smith-j-hamilton-oh-2024-01-15"}, false, "different fingerprint")
	check(searchdom.Candidate{Fingerprint: "fagan-m-unknown-ca-unknown"}, false, "DOD-unknown fingerprint alone must not fire")
	check(searchdom.Candidate{
		Fingerprint: "fagan-m-unknown-ca-unknown",
		URL:         "http://Example.com/obit/m-fagan/",
	}, true, "DOD-unknown paired with normalized-equal URL")

	// another search key sees none of the per-query rules
	got, err := s.IsExcluded(ctx, "1111222233334444", searchdom.Candidate{Fingerprint: "smith-j-cincinnati-oh-2024-01-15"})
	if err != nil || got {
		t.Errorf("per-query rule leaked across search keys (got=%v err=%v)", got, err)
	}
}
