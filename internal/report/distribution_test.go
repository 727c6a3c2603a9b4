package report

import (
	"testing"

	"github.com/facilita-cr/facilita/internal/model"
)

func TestDistributionsFixedAxis(t *testing.T) {
	rows, _ := Expand([]model.Response{makeResponse("Ana")})
	dists, anomalies := Distributions(rows)
	if len(dists) != model.NumQuestions {
		t.Fatalf("expected %d distributions, got %d", model.NumQuestions, len(dists))
	}
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	for i, d := range dists {
		if want := model.Questions()[i].ID; d.Question.ID != want {
			t.Fatalf("distribution %d is for %q, want %q", i, d.Question.ID, want)
		}
		// Every category present, absent ones at zero.
		buenoIdx := model.CategoryIndex(model.CategoryBueno)
		for ci, count := range d.Counts {
			want := 0
			if ci == buenoIdx {
				want = 1
			}
			if count != want {
				t.Fatalf("%s category %d = %d, want %d", d.Question.ID, ci, count, want)
			}
		}
		if d.Total() != 1 {
			t.Fatalf("%s total = %d, want 1", d.Question.ID, d.Total())
		}
	}
}

func TestDistributionsSingleScopeScenario(t *testing.T) {
	// One stored row "Ana, Beto" with P1=Excelente; selecting Ana must
	// count it once with the remaining categories zero-filled.
	r := makeResponse("Ana, Beto")
	r.Ratings[0] = model.CategoryExcelente
	rows, _ := Expand([]model.Response{r})
	filtered := Filter(rows, Scope("Ana"))
	if len(filtered) != 1 {
		t.Fatalf("expected 1 row for Ana, got %d", len(filtered))
	}
	dists, _ := Distributions(filtered)
	p1 := dists[0]
	want := [model.NumCategories]int{1, 0, 0, 0, 0}
	if p1.Counts != want {
		t.Fatalf("P1 counts = %v, want %v", p1.Counts, want)
	}
}

func TestDistributionsUnknownCategory(t *testing.T) {
	r := makeResponse("Ana")
	r.Ratings[0] = "excelente" // wrong casing: counted in no bucket
	rows, _ := Expand([]model.Response{r})
	dists, anomalies := Distributions(rows)
	for ci, count := range dists[0].Counts {
		if count != 0 {
			t.Fatalf("P1 category %d = %d, want 0", ci, count)
		}
	}
	if dists[0].Total() != 0 {
		t.Fatalf("P1 total = %d, want 0", dists[0].Total())
	}
	found := false
	for _, a := range anomalies {
		if a.Kind == AnomalyUnknownCategory {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unknown-category anomaly, got %v", anomalies)
	}
}

func TestTotalsOrderAndCounts(t *testing.T) {
	rows, _ := Expand([]model.Response{
		makeResponse("Ana, Beto"),
		makeResponse("Beto"),
		makeResponse("Carla"),
	})
	totals := Totals(rows)
	if len(totals) != 3 {
		t.Fatalf("expected 3 totals, got %d", len(totals))
	}
	if totals[0].Name != "Beto" || totals[0].Count != 2 {
		t.Fatalf("unexpected leader: %+v", totals[0])
	}
	// Ties break by name.
	if totals[1].Name != "Ana" || totals[2].Name != "Carla" {
		t.Fatalf("unexpected tie order: %+v", totals)
	}
	sum := 0
	for _, tot := range totals {
		sum += tot.Count
	}
	if sum != len(rows) {
		t.Fatalf("totals sum %d, want %d", sum, len(rows))
	}
}
