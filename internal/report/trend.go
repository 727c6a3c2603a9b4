package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/facilita-cr/facilita/internal/model"
)

// Trend buckets in-scope rows per workshop day for the trend plots.
type Trend struct {
	Days       []string
	Counts     []float64
	MeanScores []float64
}

// BuildTrend groups rows by workshop date and derives, per day, the
// submission count and the mean ordinal score across all ten questions.
// Rows with unparseable dates are skipped and reported as anomalies.
func BuildTrend(rows []ExpandedResponse) (Trend, []Anomaly) {
	type bucket struct {
		count    int
		scoreSum int
		scored   int
	}
	buckets := map[string]*bucket{}
	var anomalies []Anomaly
	for _, row := range rows {
		day := row.WorkshopDate
		if _, err := time.Parse(model.DateLayout, day); err != nil {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyBadDate,
				Detail: fmt.Sprintf("unparseable workshop date %q", day),
			})
			continue
		}
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.count++
		for _, rating := range row.Ratings {
			if score := model.CategoryScore(rating); score > 0 {
				b.scoreSum += score
				b.scored++
			}
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := Trend{Days: days}
	for _, day := range days {
		b := buckets[day]
		trend.Counts = append(trend.Counts, float64(b.count))
		mean := 0.0
		if b.scored > 0 {
			mean = float64(b.scoreSum) / float64(b.scored)
		}
		trend.MeanScores = append(trend.MeanScores, mean)
	}
	return trend, anomalies
}
