package report

import (
	"context"
	"fmt"

	"github.com/facilita-cr/facilita/internal/store"
)

// ChartMode selects how question distributions are drawn.
type ChartMode int

// Chart modes. Alternate mirrors the original dashboard: pie for even
// question indexes, bars for odd ones.
const (
	ChartAlternate ChartMode = iota
	ChartPie
	ChartBar
)

// ParseChartMode maps a config/flag value onto a ChartMode.
func ParseChartMode(value string) (ChartMode, error) {
	switch value {
	case "", "alternate":
		return ChartAlternate, nil
	case "pie":
		return ChartPie, nil
	case "bar":
		return ChartBar, nil
	default:
		return ChartAlternate, fmt.Errorf("unknown chart mode %q (use pie, bar, or alternate)", value)
	}
}

// ForQuestion resolves the concrete chart for a question index.
func (m ChartMode) ForQuestion(index int) ChartMode {
	if m != ChartAlternate {
		return m
	}
	if index%2 == 0 {
		return ChartPie
	}
	return ChartBar
}

// Options configures an aggregation pass.
type Options struct {
	// Expand splits multi-facilitator rows into one row per name.
	// Disabled, the joined string is matched as a single value.
	Expand bool
	Chart  ChartMode
}

// DefaultOptions returns the canonical aggregation behavior.
func DefaultOptions() Options {
	return Options{Expand: true, Chart: ChartAlternate}
}

// Report holds everything one reporting pass derives from a store
// snapshot. Recomputed fresh on every call; nothing here persists.
type Report struct {
	Scope   Scope
	Options Options

	// Total counts the rows in scope.
	Total int
	// Distributions holds one entry per question, P1..P10.
	Distributions []Distribution
	// Totals is populated only for the all scope, over the expanded
	// unfiltered set.
	Totals []FacilitatorTotal
	// Rows are the in-scope rows, for the response table.
	Rows []ExpandedResponse
	// Facilitators lists distinct observed names for the selector.
	Facilitators []string
	// Trend buckets the in-scope rows per workshop day.
	Trend Trend
	// Anomalies collects dropped or ignored values for diagnosis.
	Anomalies []Anomaly
}

// Build re-reads the entire store and computes all derived structures
// for the scope. Store errors propagate; an empty store yields all-zero
// distributions and empty totals without error.
func Build(ctx context.Context, st *store.Store, scope Scope, opts Options) (Report, error) {
	responses, err := st.ListAll(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load responses: %w", err)
	}

	var expanded []ExpandedResponse
	var anomalies []Anomaly
	if opts.Expand {
		expanded, anomalies = Expand(responses)
	} else {
		expanded = Flatten(responses)
	}

	filtered := Filter(expanded, scope)
	distributions, distAnomalies := Distributions(filtered)
	anomalies = append(anomalies, distAnomalies...)

	trend, trendAnomalies := BuildTrend(filtered)
	anomalies = append(anomalies, trendAnomalies...)

	r := Report{
		Scope:         scope,
		Options:       opts,
		Total:         len(filtered),
		Distributions: distributions,
		Rows:          filtered,
		Facilitators:  DistinctFacilitators(expanded),
		Trend:         trend,
		Anomalies:     anomalies,
	}
	if scope == ScopeAll {
		r.Totals = Totals(expanded)
	}
	return r, nil
}
