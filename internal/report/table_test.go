package report

import (
	"strings"
	"testing"
)

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"Nombre", "Total"}
	rows := [][]string{
		{"Ana", "12"},
		{"Bernardita", "3"},
	}
	lines := FormatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[1] != "Ana           12" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[2] != "Bernardita     3" {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := FormatTable([]string{"Delegación"}, [][]string{{"San José"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != len([]rune(lines[1])) {
		t.Fatalf("columns not aligned:\n%q\n%q", lines[0], lines[1])
	}
}

func TestRenderResponsesEmpty(t *testing.T) {
	var buf strings.Builder
	if err := RenderResponses(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No hay respuestas registradas." {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestRenderReportHeaderLines(t *testing.T) {
	domain := []ExpandedResponse{
		{Response: makeResponse("Ana"), Facilitator: "Ana"},
	}
	dists, _ := Distributions(domain)
	r := Report{
		Scope:         Scope("Ana"),
		Options:       DefaultOptions(),
		Total:         1,
		Distributions: dists,
		Rows:          domain,
	}
	var buf strings.Builder
	if err := Render(&buf, r, 60, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Evaluaciones de: Ana") {
		t.Fatalf("missing scope line:\n%s", out)
	}
	if !strings.Contains(out, "Total de respuestas recibidas: 1") {
		t.Fatalf("missing total line:\n%s", out)
	}
	if !strings.Contains(out, "Respuestas registradas") {
		t.Fatalf("missing response table section:\n%s", out)
	}
	if strings.Contains(out, "Total de evaluaciones por facilitador") {
		t.Fatalf("scoped report must not show team totals:\n%s", out)
	}
}
