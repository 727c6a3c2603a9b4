package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/facilita-cr/facilita/internal/model"
)

const (
	defaultChartWidth = 60
	minBarWidth       = 10
	barRune           = '█'
	emptyBarRune      = '░'
)

// Bar is one labeled count in a bar or share chart.
type Bar struct {
	Label string
	Count int
}

// DistributionBars lays a distribution onto the fixed category axis,
// one bar per category in best-to-worst order, zeros included.
func DistributionBars(d Distribution) []Bar {
	bars := make([]Bar, 0, model.NumCategories)
	for i, cat := range model.Categories() {
		bars = append(bars, Bar{Label: cat, Count: d.Counts[i]})
	}
	return bars
}

// TotalsBars converts facilitator totals into chart bars.
func TotalsBars(totals []FacilitatorTotal) []Bar {
	bars := make([]Bar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, Bar{Label: t.Name, Count: t.Count})
	}
	return bars
}

// RenderBars draws a horizontal bar chart with an integer count scale.
func RenderBars(w io.Writer, title string, bars []Bar, width int) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = defaultChartWidth
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	labelWidth := maxLabelWidth(bars)
	maxCount := maxBarCount(bars)
	countWidth := len(fmt.Sprintf("%d", maxCount))
	barWidth := width - labelWidth - countWidth - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for _, bar := range bars {
		filled := scaleBar(bar.Count, maxCount, barWidth)
		line := fmt.Sprintf("%s  %s%s  %*d",
			padLabel(bar.Label, labelWidth),
			strings.Repeat(string(barRune), filled),
			strings.Repeat(string(emptyBarRune), barWidth-filled),
			countWidth, bar.Count)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderShares draws a percent-per-label breakdown, the terminal stand-in
// for the pie variant: every label appears with its share even at zero.
func RenderShares(w io.Writer, title string, bars []Bar, width int) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = defaultChartWidth
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	total := 0
	for _, bar := range bars {
		total += bar.Count
	}
	labelWidth := maxLabelWidth(bars)
	barWidth := width - labelWidth - 16
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for _, bar := range bars {
		share := 0.0
		if total > 0 {
			share = float64(bar.Count) / float64(total)
		}
		filled := int(share*float64(barWidth) + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		line := fmt.Sprintf("%s  %s%s %5.1f%% (%d)",
			padLabel(bar.Label, labelWidth),
			strings.Repeat(string(barRune), filled),
			strings.Repeat(string(emptyBarRune), barWidth-filled),
			share*100, bar.Count)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDistribution draws one question's distribution using the chart
// resolved for its index under the given mode.
func RenderDistribution(w io.Writer, d Distribution, index int, mode ChartMode, width int) error {
	title := fmt.Sprintf("%s · %s", d.Question.ID, d.Question.Label)
	if mode.ForQuestion(index) == ChartPie {
		return RenderShares(w, title, DistributionBars(d), width)
	}
	return RenderBars(w, title, DistributionBars(d), width)
}

func maxLabelWidth(bars []Bar) int {
	width := 0
	for _, bar := range bars {
		if w := runewidth.StringWidth(bar.Label); w > width {
			width = w
		}
	}
	return width
}

func maxBarCount(bars []Bar) int {
	maxCount := 0
	for _, bar := range bars {
		if bar.Count > maxCount {
			maxCount = bar.Count
		}
	}
	return maxCount
}

// scaleBar maps a count onto bar cells; any nonzero count shows at
// least one cell.
func scaleBar(count, maxCount, barWidth int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	filled := count * barWidth / maxCount
	if filled < 1 {
		filled = 1
	}
	if filled > barWidth {
		filled = barWidth
	}
	return filled
}

func padLabel(label string, width int) string {
	pad := width - runewidth.StringWidth(label)
	if pad <= 0 {
		return label
	}
	return label + strings.Repeat(" ", pad)
}
