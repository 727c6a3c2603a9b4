package report

import (
	"fmt"
	"sort"

	"github.com/facilita-cr/facilita/internal/model"
)

// AnomalyKind classifies a data-shape anomaly found during aggregation.
type AnomalyKind string

// Anomaly kinds. These are diagnostics, never errors: the offending
// value is omitted or zero-filled per the aggregation rules.
const (
	AnomalyUnknownCategory   AnomalyKind = "unknown-category"
	AnomalyEmptyFacilitators AnomalyKind = "empty-facilitators"
	AnomalyBadDate           AnomalyKind = "bad-date"
)

// Anomaly records one dropped or ignored value for diagnosis.
type Anomaly struct {
	Kind   AnomalyKind
	Detail string
}

// Distribution maps one question's responses onto the fixed category
// axis. Counts align with model.Categories(); absent categories hold 0,
// never omitted.
type Distribution struct {
	Question model.Question
	Counts   [model.NumCategories]int
}

// Total sums the counted responses. Values outside the fixed category
// set count in no bucket, so Total can undershoot the scope size.
func (d Distribution) Total() int {
	total := 0
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// Distributions computes one Distribution per question in P1..P10 order
// over the given rows. Category values outside the fixed set are counted
// nowhere and reported as anomalies.
func Distributions(rows []ExpandedResponse) ([]Distribution, []Anomaly) {
	questions := model.Questions()
	out := make([]Distribution, len(questions))
	var anomalies []Anomaly
	for qi, q := range questions {
		out[qi].Question = q
		for _, row := range rows {
			value := row.Ratings[qi]
			idx := model.CategoryIndex(value)
			if idx < 0 {
				anomalies = append(anomalies, Anomaly{
					Kind:   AnomalyUnknownCategory,
					Detail: fmt.Sprintf("%s: unrecognized rating %q", q.ID, value),
				})
				continue
			}
			out[qi].Counts[idx]++
		}
	}
	return out, anomalies
}

// FacilitatorTotal counts expanded rows naming one facilitator.
type FacilitatorTotal struct {
	Name  string
	Count int
}

// Totals counts expanded rows per facilitator over the full unfiltered
// set, sorted by count descending then name, matching the team summary
// bar order.
func Totals(rows []ExpandedResponse) []FacilitatorTotal {
	counts := map[string]int{}
	for _, row := range rows {
		if row.Facilitator == "" {
			continue
		}
		counts[row.Facilitator]++
	}
	out := make([]FacilitatorTotal, 0, len(counts))
	for name, count := range counts {
		out = append(out, FacilitatorTotal{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}
