package extract

import (
	"testing"
	"time"
)

func TestExtractDOD_DeathPhrase(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := ExtractDOD("John Smith passed away on January 3, 2026 surrounded by family.", now)
	if !ok || got != "2026-01-03" {
		t.Fatalf("ExtractDOD death phrase = %q,%v, want 2026-01-03,true", got, ok)
	}
}

func TestExtractDOD_BirthDeathRangeSecondWins(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := ExtractDOD("Jane Doe, March 4, 1950 - January 2, 2026", now)
	if !ok || got != "2026-01-02" {
		t.Fatalf("ExtractDOD range = %q,%v, want 2026-01-02,true", got, ok)
	}
}

func TestExtractDOD_YearOnlyRange(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := ExtractDOD("In loving memory, 1950 - 2025", now)
	if !ok || got != "2025-01-01" {
		t.Fatalf("ExtractDOD year range = %q,%v, want 2025-01-01,true", got, ok)
	}
}

func TestExtractDOD_RejectsFutureDate(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	_, ok := ExtractDOD("He passed away on December 25, 2030.", now)
	if ok {
		t.Fatal("ExtractDOD should reject a date far in the future")
	}
}

func TestExtractDOD_ObituaryContextStandalone(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := ExtractDOD("Obituary for John Smith. Visitation is set for January 5, 2026.", now)
	if !ok || got != "2026-01-05" {
		t.Fatalf("ExtractDOD obituary context = %q,%v, want 2026-01-05,true", got, ok)
	}
}

func TestExtractDOD_TwoDigitYearPivot(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		text, want string
	}{
		{"Obituary: John Doe, d. 3/14/85", "1985-03-14"},
		{"Obituary: Jane Roe, d. 3/14/15", "2015-03-14"},
		{"In loving memory of Sam Poe, 6/2/41 - 12/30/25", "2025-12-30"},
	}
	for _, tc := range tests {
		got, ok := ExtractDOD(tc.text, now)
		if !ok || got != tc.want {
			t.Fatalf("ExtractDOD(%q) = %q,%v, want %s,true", tc.text, got, ok, tc.want)
		}
	}
}

func TestInferYear_Cusp(t *testing.T) {
	tests := []struct {
		month, day, dod, want string
	}{
		{"January", "3", "2025-12-29", "2026-01-03"},
		{"March", "20", "2025-03-15", "2025-03-20"},
		{"December", "29", "2025-12-29", "2025-12-29"},
	}
	for _, tc := range tests {
		got := InferYear(tc.month, tc.day, tc.dod)
		if got != tc.want {
			t.Fatalf("InferYear(%q,%q,%q) = %q, want %q", tc.month, tc.day, tc.dod, got, tc.want)
		}
	}
}

func TestExtractServiceDates_YearEndCusp(t *testing.T) {
	dates := ExtractServiceDates("Funeral service on Friday, January 4", "2025-12-29")
	if dates.Funeral != "2026-01-04" {
		t.Fatalf("ExtractServiceDates funeral = %q, want 2026-01-04", dates.Funeral)
	}
}

func TestExtractServiceDates_ExplicitYear(t *testing.T) {
	dates := ExtractServiceDates("Visitation will be held March 3, 2026 at the funeral home.", "2026-02-20")
	if dates.Visitation != "2026-03-03" {
		t.Fatalf("ExtractServiceDates visitation = %q, want 2026-03-03", dates.Visitation)
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"age 71", 71, true},
		{"aged 45", 45, true},
		{"71 years old", 71, true},
		{", 71,", 71, true},
		{", 10,", 0, false}, // below comma-form floor of 18
		{"no age here", 0, false},
	}
	for _, tc := range tests {
		got, ok := ExtractAge(tc.text)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ExtractAge(%q) = %d,%v, want %d,%v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractLocation(t *testing.T) {
	loc, ok := ExtractLocation("John Smith of Hamilton, OH passed away peacefully.")
	if !ok || loc.City != "Hamilton" || loc.State != "OH" {
		t.Fatalf("ExtractLocation = %+v,%v, want Hamilton,OH,true", loc, ok)
	}

	loc, ok = ExtractLocation("Jane Doe in Saint Louis, Missouri")
	if !ok || loc.State != "MO" {
		t.Fatalf("ExtractLocation full state name = %+v,%v", loc, ok)
	}

	if _, ok := ExtractLocation("Jane Doe of Nowhere, ZZ"); ok {
		t.Fatal("ExtractLocation should reject an invalid state code")
	}
}

func TestExtractName_SmashedDate(t *testing.T) {
	n, ok := ExtractName("Stephen KellyFebruary 7, 2026", "", "", "")
	if !ok || n.NameFirst != "Stephen" || n.NameLast != "Kelly" {
		t.Fatalf("ExtractName smashed date = %+v,%v, want Stephen/Kelly", n, ok)
	}
}

func TestExtractName_MonthAsSurname(t *testing.T) {
	n, ok := ExtractName("Jesse Gerald May Obituary - Newcomer Dayton", "", "", "")
	if !ok || n.NameFirst != "Jesse" || n.NameLast != "May" {
		t.Fatalf("ExtractName month-as-surname = %+v,%v, want Jesse/May", n, ok)
	}
}

func TestExtractName_SocialMediaStripped(t *testing.T) {
	n, ok := ExtractName("John Smith (@johnsmith) • Instagram", "", "", "")
	if !ok || n.NameFirst != "John" || n.NameLast != "Smith" {
		t.Fatalf("ExtractName social media strip = %+v,%v, want John/Smith", n, ok)
	}
}

func TestExtractName_GenericTitleFallsBackToSnippet(t *testing.T) {
	n, ok := ExtractName("Recent Obituaries", "SMITH, James passed away peacefully at home.", "", "")
	if !ok || n.NameFirst != "James" {
		t.Fatalf("ExtractName generic title fallback = %+v,%v, want first=James", n, ok)
	}
}

func TestExtractName_URLSlugFallback(t *testing.T) {
	n, ok := ExtractName("Obituaries", "No usable text here", "/obituaries/james-earl-smith", "")
	if !ok || n.NameFirst != "James" || n.NameLast != "Smith" {
		t.Fatalf("ExtractName slug fallback = %+v,%v, want James/Smith", n, ok)
	}
}

func TestExtractName_RejectsGenericLastName(t *testing.T) {
	_, ok := ExtractName("Jane Doe Photos", "", "", "")
	if ok {
		t.Fatal("ExtractName should reject a generic blocklisted last name")
	}
}
