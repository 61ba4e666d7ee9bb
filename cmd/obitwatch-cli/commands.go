package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"obitwatch/internal/modkit"

	excldom "obitwatch/internal/services/exclusions/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

func runSearch(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var (
		fFirst    = fs.String("first", "", "first name")
		fLast     = fs.String("last", "", "last name")
		fMiddle   = fs.String("middle", "", "middle name")
		fNick     = fs.String("nickname", "", "nickname")
		fCity     = fs.String("city", "", "city")
		fState    = fs.String("state", "", "state (2-letter or full name)")
		fAge      = fs.Int("age", 0, "approximate age")
		fKeywords = fs.String("keywords", "", "comma-separated keywords")
		fInput    = fs.String("input-date", "", "query entry date YYYY-MM-DD (ages the query)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fLast == "" {
		return fmt.Errorf("--last required")
	}
	if *fFirst == "" && *fNick == "" {
		return fmt.Errorf("--first or --nickname required")
	}

	q := searchdom.Query{
		FirstName:  *fFirst,
		LastName:   *fLast,
		MiddleName: *fMiddle,
		Nickname:   *fNick,
		City:       *fCity,
		State:      *fState,
	}
	if *fAge > 0 {
		q.Age = fAge
	}
	if *fKeywords != "" {
		for _, k := range strings.Split(*fKeywords, ",") {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				q.Keywords = append(q.Keywords, k)
			}
		}
	}
	if *fInput != "" {
		t, err := time.Parse("2006-01-02", *fInput)
		if err != nil {
			return fmt.Errorf("--input-date must be YYYY-MM-DD")
		}
		q.InputDate = t
	}

	ports, err := engine(deps)
	if err != nil {
		return err
	}
	nq, err := ports.Engine.NormalizeQuery(q, time.Now().UTC())
	if err != nil {
		return err
	}
	results, err := ports.Engine.Search(context.Background(), q)
	if err != nil {
		return err
	}
	return printJSON(struct {
		KeySearch string                `json:"keySearch"`
		Results   []searchdom.Candidate `json:"results"`
	}{KeySearch: nq.SearchKey, Results: results})
}

func runExclude(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("exclude", flag.ExitOnError)
	var (
		fKey    = fs.String("key", "", "16-hex search key (per-query scope)")
		fGlobal = fs.Bool("global", false, "global scope")
		fFP     = fs.String("fingerprint", "", "fingerprint to suppress")
		fURL    = fs.String("url", "", "url to suppress")
		fName   = fs.String("name", "", "name annotation")
		fReason = fs.String("reason", "", "reason annotation")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fGlobal && *fKey != "" {
		return fmt.Errorf("--global and --key are mutually exclusive")
	}

	scope := excldom.ScopePerQuery
	if *fGlobal {
		scope = excldom.ScopeGlobal
	}
	x, isNew, err := exclStore(deps).Store.Add(context.Background(), excldom.AddInput{
		Scope:       scope,
		SearchKey:   *fKey,
		Fingerprint: *fFP,
		URL:         *fURL,
		Name:        *fName,
		Reason:      *fReason,
	})
	if err != nil {
		return err
	}
	return printJSON(struct {
		Exclusion excldom.Exclusion `json:"exclusion"`
		IsNew     bool              `json:"isNew"`
	}{Exclusion: x, IsNew: isNew})
}

func runExclusions(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("exclusions", flag.ExitOnError)
	var (
		fKey    = fs.String("key", "", "16-hex search key")
		fGlobal = fs.Bool("global", false, "global-scope rules only")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := exclStore(deps).Store
	ctx := context.Background()

	var (
		xs  []excldom.Exclusion
		err error
	)
	switch {
	case *fKey != "":
		xs, err = store.GetByKeySearch(ctx, *fKey)
	case *fGlobal:
		xs, err = store.GetGlobalExclusions(ctx)
	default:
		xs, err = store.GetAll(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(struct {
		Exclusions []excldom.Exclusion `json:"exclusions"`
	}{Exclusions: xs})
}

func runUnexclude(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("unexclude", flag.ExitOnError)
	fID := fs.String("id", "", "exclusion id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fID == "" {
		return fmt.Errorf("--id required")
	}
	ok, err := exclStore(deps).Store.Remove(context.Background(), *fID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("exclusion %s not found", *fID)
	}
	return printJSON(struct {
		Success bool `json:"success"`
	}{Success: true})
}

func runStats(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("exclusion-stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	stats, err := exclStore(deps).Store.GetStats(context.Background())
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runReview(deps modkit.Deps, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	var (
		fBatch  = fs.String("batch", "", "batch id")
		fLatest = fs.Bool("latest", false, "most recent batch")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ins := inspect(deps)
	ctx := context.Background()

	switch {
	case *fBatch != "":
		b, err := ins.Get(ctx, *fBatch)
		if err != nil {
			return err
		}
		return printJSON(b)
	case *fLatest:
		b, err := ins.Latest(ctx)
		if err != nil {
			return err
		}
		return printJSON(b)
	default:
		bs, err := ins.List(ctx, 0)
		if err != nil {
			return err
		}
		return printJSON(bs)
	}
}
