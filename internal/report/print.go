package report

import (
	"fmt"
	"io"
)

// Render prints a full report: scope summary, per-question charts, the
// response table, team totals for the all scope, and the trend plot.
func Render(w io.Writer, r Report, width int, forceColor bool) error {
	scopeName := "Todos"
	if r.Scope != ScopeAll {
		scopeName = r.Scope.Facilitator()
	}
	if _, err := fmt.Fprintf(w, "Evaluaciones de: %s\n", scopeName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total de respuestas recibidas: %d\n\n", r.Total); err != nil {
		return err
	}

	for i, d := range r.Distributions {
		if err := RenderDistribution(w, d, i, r.Options.Chart, width); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Respuestas registradas"); err != nil {
		return err
	}
	if err := RenderResponses(w, r.Rows); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if r.Scope == ScopeAll {
		if err := RenderBars(w, "Total de evaluaciones por facilitador", TotalsBars(r.Totals), width); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}

	if err := RenderTrend(w, r.Trend, plotWidthFor(width), defaultPlotHeight, forceColor); err != nil {
		return err
	}

	if len(r.Anomalies) > 0 {
		if _, err := fmt.Fprintf(w, "\nValores descartados: %d\n", len(r.Anomalies)); err != nil {
			return err
		}
		for _, a := range r.Anomalies {
			if _, err := fmt.Fprintf(w, "  [%s] %s\n", a.Kind, a.Detail); err != nil {
				return err
			}
		}
	}
	return nil
}
