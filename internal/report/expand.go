// Package report computes evaluation aggregates and renders them.
package report

import (
	"sort"
	"strings"

	"github.com/facilita-cr/facilita/internal/model"
)

// Scope selects which rows feed an aggregation pass: the ScopeAll
// sentinel or one exact facilitator name.
type Scope string

// ScopeAll selects every response.
const ScopeAll Scope = "all"

// Facilitator returns the selected name, or "" for the all scope.
func (s Scope) Facilitator() string {
	if s == ScopeAll {
		return ""
	}
	return strings.TrimSpace(string(s))
}

// ExpandedResponse is one response attributed to a single facilitator.
// A response naming k facilitators expands to k of these, differing only
// in Facilitator. Never persisted.
type ExpandedResponse struct {
	model.Response
	Facilitator string
}

// Expand splits each response's facilitator field on commas and yields
// one expanded row per name. A response whose field holds one name yields
// exactly one row; an empty field yields none and is reported as an anomaly.
func Expand(responses []model.Response) ([]ExpandedResponse, []Anomaly) {
	var out []ExpandedResponse
	var anomalies []Anomaly
	for _, r := range responses {
		names := model.SplitFacilitators(r.Facilitators)
		if len(names) == 0 {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyEmptyFacilitators,
				Detail: "response submitted at " + r.SubmittedAt + " names no facilitator",
			})
			continue
		}
		for _, name := range names {
			out = append(out, ExpandedResponse{Response: r, Facilitator: name})
		}
	}
	return out, anomalies
}

// Flatten keeps the joined facilitator string as a single attribution
// value. Legacy behavior of the non-expanding dashboard variants: a
// multi-facilitator row matches a name filter only when the whole stored
// string equals the selected name.
func Flatten(responses []model.Response) []ExpandedResponse {
	out := make([]ExpandedResponse, 0, len(responses))
	for _, r := range responses {
		out = append(out, ExpandedResponse{Response: r, Facilitator: strings.TrimSpace(r.Facilitators)})
	}
	return out
}

// Filter keeps rows attributed to the scope's facilitator. The all scope
// keeps everything. Filtering an already-filtered set by the same scope
// returns an identical set.
func Filter(rows []ExpandedResponse, scope Scope) []ExpandedResponse {
	if scope == ScopeAll {
		return rows
	}
	want := scope.Facilitator()
	out := make([]ExpandedResponse, 0, len(rows))
	for _, row := range rows {
		if row.Facilitator == want {
			out = append(out, row)
		}
	}
	return out
}

// DistinctFacilitators lists the facilitator names observed in the rows,
// sorted, for the dashboard selector. Drawn from stored values, not the
// static roster.
func DistinctFacilitators(rows []ExpandedResponse) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, row := range rows {
		if row.Facilitator == "" {
			continue
		}
		if _, ok := seen[row.Facilitator]; ok {
			continue
		}
		seen[row.Facilitator] = struct{}{}
		out = append(out, row.Facilitator)
	}
	sort.Strings(out)
	return out
}
