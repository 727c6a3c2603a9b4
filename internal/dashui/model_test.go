package dashui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/facilita-cr/facilita/internal/ingest"
	"github.com/facilita-cr/facilita/internal/model"
	"github.com/facilita-cr/facilita/internal/report"
	"github.com/facilita-cr/facilita/internal/store"
)

func newTestStore(t *testing.T, facilitatorSets ...[]string) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "facilita.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	in := ingest.New(st)
	for _, facs := range facilitatorSets {
		sub := model.Submission{Facilitators: facs, WorkshopDate: "2024-05-01"}
		for i := range sub.Ratings {
			sub.Ratings[i] = model.CategoryBueno
		}
		if _, err := in.Submit(context.Background(), sub); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	return st
}

func TestNewModelEmptyStore(t *testing.T) {
	st := newTestStore(t)
	m := NewModel(st, report.ScopeAll, report.DefaultOptions())
	if m.errMsg != "" {
		t.Fatalf("empty store should not be an error: %q", m.errMsg)
	}
	if m.rep.Total != 0 {
		t.Fatalf("expected 0 responses, got %d", m.rep.Total)
	}
	if len(m.rep.Distributions) != model.NumQuestions {
		t.Fatalf("expected %d distributions, got %d", model.NumQuestions, len(m.rep.Distributions))
	}
}

func TestCycleScopeNoFacilitators(t *testing.T) {
	st := newTestStore(t)
	m := NewModel(st, report.ScopeAll, report.DefaultOptions())
	m.cycleScope(1)
	if m.scope != report.ScopeAll {
		t.Fatalf("cycle on empty data changed scope to %q", m.scope)
	}
}

func TestCycleScopeWrapsThroughAll(t *testing.T) {
	st := newTestStore(t, []string{"Ana"}, []string{"Beto"})
	m := NewModel(st, report.ScopeAll, report.DefaultOptions())

	m.cycleScope(1)
	if m.scope != report.Scope("Ana") {
		t.Fatalf("first cycle = %q, want Ana", m.scope)
	}
	m.cycleScope(1)
	if m.scope != report.Scope("Beto") {
		t.Fatalf("second cycle = %q, want Beto", m.scope)
	}
	m.cycleScope(1)
	if m.scope != report.ScopeAll {
		t.Fatalf("third cycle = %q, want all", m.scope)
	}
	m.cycleScope(-1)
	if m.scope != report.Scope("Beto") {
		t.Fatalf("reverse cycle from all = %q, want Beto", m.scope)
	}
}

func TestCycleChartOrder(t *testing.T) {
	st := newTestStore(t)
	m := NewModel(st, report.ScopeAll, report.DefaultOptions())
	want := []report.ChartMode{report.ChartPie, report.ChartBar, report.ChartAlternate}
	for _, mode := range want {
		m.cycleChart()
		if m.opts.Chart != mode {
			t.Fatalf("chart = %v, want %v", m.opts.Chart, mode)
		}
	}
}

func TestKnownFacilitator(t *testing.T) {
	st := newTestStore(t, []string{"Ana", "Beto"})
	m := NewModel(st, report.ScopeAll, report.DefaultOptions())
	if !m.knownFacilitator("Ana") || !m.knownFacilitator("Beto") {
		t.Fatalf("expanded names should be known, got %v", m.rep.Facilitators)
	}
	if m.knownFacilitator("Carla") {
		t.Fatal("unknown name reported as known")
	}
}
