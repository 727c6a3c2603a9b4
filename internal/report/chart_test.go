package report

import (
	"strings"
	"testing"

	"github.com/facilita-cr/facilita/internal/model"
)

func TestDistributionBarsFixedAxis(t *testing.T) {
	d := Distribution{Question: model.Questions()[0]}
	d.Counts[0] = 3
	bars := DistributionBars(d)
	if len(bars) != model.NumCategories {
		t.Fatalf("expected %d bars, got %d", model.NumCategories, len(bars))
	}
	for i, cat := range model.Categories() {
		if bars[i].Label != cat {
			t.Fatalf("bar %d label = %q, want %q", i, bars[i].Label, cat)
		}
	}
	if bars[0].Count != 3 || bars[4].Count != 0 {
		t.Fatalf("counts not carried over: %+v", bars)
	}
}

func TestRenderBarsShowsZeroRows(t *testing.T) {
	bars := []Bar{
		{Label: model.CategoryExcelente, Count: 4},
		{Label: model.CategoryDeficiente, Count: 0},
	}
	var buf strings.Builder
	if err := RenderBars(&buf, "P1 · Dominio del tema", bars, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title plus one line per bar, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], model.CategoryDeficiente) {
		t.Fatalf("zero-count category missing from output:\n%s", out)
	}
	if strings.Contains(lines[2], string(barRune)) {
		t.Fatalf("zero-count bar should be empty:\n%s", out)
	}
	if !strings.Contains(lines[1], string(barRune)) {
		t.Fatalf("nonzero bar should be filled:\n%s", out)
	}
}

func TestRenderSharesPercentages(t *testing.T) {
	bars := []Bar{
		{Label: "Excelente", Count: 3},
		{Label: "Bueno", Count: 1},
	}
	var buf strings.Builder
	if err := RenderShares(&buf, "", bars, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "75.0%") || !strings.Contains(out, "25.0%") {
		t.Fatalf("expected 75/25 split in output:\n%s", out)
	}
	if !strings.Contains(out, "(3)") || !strings.Contains(out, "(1)") {
		t.Fatalf("expected raw counts in output:\n%s", out)
	}
}

func TestRenderSharesAllZero(t *testing.T) {
	bars := DistributionBars(Distribution{Question: model.Questions()[1]})
	var buf strings.Builder
	if err := RenderShares(&buf, "title", bars, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "0.0%") != model.NumCategories {
		t.Fatalf("expected a 0.0%% share per category:\n%s", out)
	}
}

func TestChartModeForQuestion(t *testing.T) {
	if got := ChartAlternate.ForQuestion(0); got != ChartPie {
		t.Fatalf("even index under alternate = %v, want pie", got)
	}
	if got := ChartAlternate.ForQuestion(1); got != ChartBar {
		t.Fatalf("odd index under alternate = %v, want bar", got)
	}
	if got := ChartBar.ForQuestion(0); got != ChartBar {
		t.Fatalf("fixed bar mode should ignore index, got %v", got)
	}
}

func TestParseChartMode(t *testing.T) {
	cases := []struct {
		in   string
		want ChartMode
		ok   bool
	}{
		{"", ChartAlternate, true},
		{"alternate", ChartAlternate, true},
		{"pie", ChartPie, true},
		{"bar", ChartBar, true},
		{"donut", ChartAlternate, false},
	}
	for _, tc := range cases {
		got, err := ParseChartMode(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseChartMode(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseChartMode(%q): expected error", tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseChartMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
