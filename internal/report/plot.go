package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Series is one named value sequence for the trend plot.
type Series struct {
	Name   string
	Values []float64
}

type seriesRange struct {
	min float64
	max float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " │ "
	fallbackTermWidth = 80
	colorReset        = "\x1b[0m"
)

var plotStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var plotColors = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
}

// PlotSeries renders a braille line plot for the series. Each series is
// scaled to its own min/max, printed above the plot.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	kept := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = plotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	scaled := make([]Series, 0, len(kept))
	ranges := make([]seriesRange, 0, len(kept))
	for _, s := range kept {
		values := resample(s.Values, width)
		minVal, maxVal := minMax(values)
		if math.Abs(maxVal-minVal) < 1e-9 {
			minVal--
			maxVal++
		}
		scaled = append(scaled, Series{Name: s.Name, Values: values})
		ranges = append(ranges, seriesRange{min: minVal, max: maxVal})
	}

	grids := make([][][]uint8, len(scaled))
	for i := range grids {
		grids[i] = makeGrid(height, width)
	}
	for si, s := range scaled {
		style := plotStyles[si%len(plotStyles)]
		prevX, prevY := -1, -1
		for x, v := range s.Values {
			row := valueToRow(v, ranges[si].min, ranges[si].max, height*4)
			px, py := x*2, row
			if prevX >= 0 {
				traceLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setDot(grids[si], dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				setDot(grids[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range scaled {
		if _, err := fmt.Fprintf(w, "%s: min=%.1f max=%.1f\n", s.Name, ranges[i].min, ranges[i].max); err != nil {
			return err
		}
	}
	axisLabels := makeAxisLabels(ranges, height)
	labelWidth := 0
	for _, label := range axisLabels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", labelWidth, axisLabels[y], axisSeparator))
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(grids, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && colorIdx >= 0 {
				row.WriteString(plotColors[colorIdx%len(plotColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	legend := make([]string, 0, len(scaled))
	for i, s := range scaled {
		label := fmt.Sprintf("⠁ %s (%s)", s.Name, plotStyles[i%len(plotStyles)].name)
		if useColor {
			label = plotColors[i%len(plotColors)] + label + colorReset
		}
		legend = append(legend, label)
	}
	if _, err := fmt.Fprintln(w, "Leyenda: "+strings.Join(legend, "  ")); err != nil {
		return err
	}
	return nil
}

// RenderTrend plots the per-day submission counts and mean scores.
func RenderTrend(w io.Writer, trend Trend, width, height int, forceColor bool) error {
	if len(trend.Days) == 0 {
		_, err := fmt.Fprintln(w, "Sin datos de tendencia.")
		return err
	}
	span := trend.Days[0]
	if last := trend.Days[len(trend.Days)-1]; last != span {
		span = span + " … " + last
	}
	title := fmt.Sprintf("Tendencia por fecha de taller (%s)", span)
	return PlotSeries(w, title, []Series{
		{Name: "Evaluaciones", Values: trend.Counts},
		{Name: "Puntaje medio", Values: trend.MeanScores},
	}, width, height, forceColor)
}

// AutoWidth reports the terminal width, with a fallback for pipes.
func AutoWidth() int {
	return terminalWidth()
}

func plotWidthFor(totalWidth int) int {
	width := totalWidth - len("00.0") - len([]rune(axisSeparator))
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// makeAxisLabels labels the top, middle, and bottom rows with the first
// series' scale; remaining series are read from their min/max lines.
func makeAxisLabels(ranges []seriesRange, height int) []string {
	labels := make([]string, height)
	if height <= 0 || len(ranges) == 0 {
		return labels
	}
	top := ranges[0].max
	bottom := ranges[0].min
	labels[0] = fmt.Sprintf("%.1f", top)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.1f", (top+bottom)/2)
	}
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%.1f", bottom)
	}
	return labels
}

func makeGrid(height, width int) [][]uint8 {
	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	return grid
}

func composeCell(grids [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, grid := range grids {
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			continue
		}
		cell := grid[y][x]
		if cell == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cell
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		if end > len(values) {
			end = len(values)
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.IsInf(minVal, 1) {
		minVal = 0
	}
	if math.IsInf(maxVal, -1) {
		maxVal = 0
	}
	return minVal, maxVal
}

func valueToRow(v, minVal, maxVal float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	if row < 0 {
		row = 0
	}
	if row >= rows {
		row = rows - 1
	}
	return row
}

func traceLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setDot(grid [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(grid) || cellX >= len(grid[cellY]) {
		return
	}
	grid[cellY][cellX] |= dotMask(x%2, y%4)
}

func dotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return masks[x][y]
}
