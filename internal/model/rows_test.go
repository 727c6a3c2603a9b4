package model

import (
	"strings"
	"testing"
)

func TestJoinFacilitators(t *testing.T) {
	cases := []struct {
		name  string
		in    []string
		want  string
		count int
	}{
		{name: "single name has no delimiter", in: []string{"Ana"}, want: "Ana", count: 1},
		{name: "two names", in: []string{"Ana", "Beto"}, want: "Ana, Beto", count: 2},
		{name: "trims and drops empties", in: []string{" Ana ", "", "  "}, want: "Ana", count: 1},
		{name: "empty selection", in: nil, want: "", count: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := JoinFacilitators(tc.in)
			if got != tc.want {
				t.Fatalf("JoinFacilitators(%v) = %q, want %q", tc.in, got, tc.want)
			}
			if n := len(SplitFacilitators(got)); n != tc.count {
				t.Fatalf("round trip yields %d names, want %d", n, tc.count)
			}
		})
	}
}

func TestSplitFacilitatorsToleratesSpacing(t *testing.T) {
	for _, joined := range []string{"Ana,Beto", "Ana, Beto", "Ana,   Beto", "Ana , Beto"} {
		names := SplitFacilitators(joined)
		if len(names) != 2 || names[0] != "Ana" || names[1] != "Beto" {
			t.Fatalf("SplitFacilitators(%q) = %v", joined, names)
		}
	}
	if names := SplitFacilitators(""); len(names) != 0 {
		t.Fatalf("empty field should yield no names, got %v", names)
	}
}

func TestRowRoundTrip(t *testing.T) {
	r := Response{
		SubmittedAt:  "2024-05-02 10:30:00",
		Participant:  "María",
		Position:     "Analista",
		Delegation:   "San José",
		Facilitators: "Ana, Beto",
		WorkshopDate: "2024-05-01",
		Positives:    "Buen ritmo",
		Suggestions:  "Más ejemplos",
	}
	for i := range r.Ratings {
		r.Ratings[i] = CategoryBueno
	}

	row := r.Row()
	if len(row) != NumColumns {
		t.Fatalf("row has %d fields, want %d", len(row), NumColumns)
	}
	back, err := ResponseFromRow(row)
	if err != nil {
		t.Fatalf("ResponseFromRow: %v", err)
	}
	if back != r {
		t.Fatalf("round trip mismatch: %+v != %+v", back, r)
	}

	if _, err := ResponseFromRow(row[:NumColumns-1]); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestColumnNamesOrder(t *testing.T) {
	names := ColumnNames()
	if len(names) != NumColumns {
		t.Fatalf("expected %d column names, got %d", NumColumns, len(names))
	}
	if names[0] != "submitted_at" || names[4] != "facilitators" || names[NumColumns-1] != "suggestions" {
		t.Fatalf("unexpected column order: %v", names)
	}
	for i := 0; i < NumQuestions; i++ {
		want := Questions()[i].ID
		if names[6+i] != want {
			t.Fatalf("column %d is %q, want %q", 6+i, names[6+i], want)
		}
	}
}

func TestCategoryIndex(t *testing.T) {
	for i, cat := range Categories() {
		if idx := CategoryIndex(cat); idx != i {
			t.Fatalf("CategoryIndex(%q) = %d, want %d", cat, idx, i)
		}
	}
	// Matching is case- and accent-sensitive.
	for _, value := range []string{"excelente", "EXCELENTE", "Muy bueno", "Óptimo", ""} {
		if idx := CategoryIndex(value); idx != -1 {
			t.Fatalf("CategoryIndex(%q) = %d, want -1", value, idx)
		}
	}
}

func TestCategoryScore(t *testing.T) {
	if s := CategoryScore(CategoryExcelente); s != 5 {
		t.Fatalf("score for Excelente = %d, want 5", s)
	}
	if s := CategoryScore(CategoryDeficiente); s != 1 {
		t.Fatalf("score for Deficiente = %d, want 1", s)
	}
	if s := CategoryScore("excelente"); s != 0 {
		t.Fatalf("score for unknown value = %d, want 0", s)
	}
}

func TestTrimNormalizesFields(t *testing.T) {
	r := Response{
		Participant:  "  María ",
		Facilitators: " Ana, Beto ",
	}
	r.Ratings[0] = " Excelente "
	r.Trim()
	if r.Participant != "María" || r.Facilitators != "Ana, Beto" || r.Ratings[0] != "Excelente" {
		t.Fatalf("trim left residue: %+v", r)
	}
	if strings.Contains(r.Facilitators, "  ") {
		t.Fatalf("unexpected double space: %q", r.Facilitators)
	}
}
