// Package dashui provides the Bubble Tea evaluation dashboard.
package dashui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facilita-cr/facilita/internal/report"
	"github.com/facilita-cr/facilita/internal/store"
)

const (
	tabQuestions = iota
	tabResponses
	tabSummary
	tabTrend
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	chartTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store *store.Store
	scope report.Scope
	opts  report.Options

	rep    report.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	respTable table.Model

	width  int
	height int

	scopeInputMode bool
	scopeInput     textinput.Model
	scopeInputErr  string
}

// NewModel constructs the dashboard over the given store.
func NewModel(st *store.Store, scope report.Scope, opts report.Options) *Model {
	m := &Model{
		store: st,
		scope: scope,
		opts:  opts,
		tabs:  []string{"Preguntas", "Respuestas", "Resumen", "Tendencia"},
	}
	m.scopeInput = textinput.New()
	m.scopeInput.Prompt = "Facilitador: "
	m.scopeInput.Placeholder = "vacío = todos"
	m.scopeInput.Cursor.SetMode(cursor.CursorBlink)
	m.respTable = buildResponseTable(nil, 0, 1)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.scopeInputMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.scopeInputMode {
			return m.updateScopeInput(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "f":
			m.cycleScope(1)
			return m, nil
		case "F":
			m.cycleScope(-1)
			return m, nil
		case "c":
			m.cycleChart()
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "/":
			return m.startScopeInput()
		case "g", "home":
			if m.activeTab == tabResponses {
				m.respTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabResponses {
				m.respTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabResponses {
				var cmd tea.Cmd
				m.respTable, cmd = m.respTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.scopeInputMode {
		return fitLines(m.renderScopeModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// refresh re-reads the entire store and recomputes every derived
// structure; there is no cache between invocations.
func (m *Model) refresh() {
	rep, err := report.Build(context.Background(), m.store, m.scope, m.opts)
	if err != nil {
		// A store failure is a hard failure, never an empty chart.
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("No se pudieron cargar las evaluaciones.")
		}
		return
	}
	m.errMsg = ""
	m.rep = rep
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.respTable = buildResponseTable(rep.Rows, width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabQuestions].SetContent(renderQuestions(m.rep, width))
	m.viewports[tabSummary].SetContent(renderSummary(m.rep, width))
	m.viewports[tabTrend].SetContent(renderTrend(m.rep, width))
}

func renderQuestions(rep report.Report, width int) string {
	var buf bytes.Buffer
	for i, d := range rep.Distributions {
		title := chartTitleStyle.Render(fmt.Sprintf("%s · %s", d.Question.ID, d.Question.Label))
		buf.WriteString(title + "\n")
		chart := report.ChartBar
		if rep.Options.Chart.ForQuestion(i) == report.ChartPie {
			chart = report.ChartPie
		}
		var err error
		if chart == report.ChartPie {
			err = report.RenderShares(&buf, "", report.DistributionBars(d), width-2)
		} else {
			err = report.RenderBars(&buf, "", report.DistributionBars(d), width-2)
		}
		if err != nil {
			return fmt.Sprintf("No se pudo dibujar el gráfico: %v", err)
		}
		buf.WriteString("\n")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderSummary(rep report.Report, width int) string {
	if rep.Scope != report.ScopeAll {
		return "El resumen del equipo se muestra con el alcance Todos (tecla f)."
	}
	if len(rep.Totals) == 0 {
		return "No hay evaluaciones registradas."
	}
	var buf bytes.Buffer
	title := chartTitleStyle.Render("Total de evaluaciones por facilitador")
	buf.WriteString(title + "\n")
	if err := report.RenderBars(&buf, "", report.TotalsBars(rep.Totals), width-2); err != nil {
		return fmt.Sprintf("No se pudo dibujar el resumen: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderTrend(rep report.Report, width int) string {
	var buf bytes.Buffer
	if err := report.RenderTrend(&buf, rep.Trend, width-8, plotHeight, true); err != nil {
		return fmt.Sprintf("No se pudo dibujar la tendencia: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildResponseTable(rows []report.ExpandedResponse, width, height int) table.Model {
	headers := report.ResponseTableHeaders()
	columns := make([]table.Column, len(headers))
	weights := []int{19, 24, 20, 16, 10}
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: weights[i]}
	}
	cells := report.ResponseTableRows(rows)
	tableRows := make([]table.Row, 0, len(cells))
	for _, c := range cells {
		tableRows = append(tableRows, table.Row(c))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	t.Focus()
	return t
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" || len(m.rep.Anomalies) > 0 {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.respTable.SetWidth(m.width)
	m.respTable.SetHeight(maxInt(1, bodyHeight-1))
	promptWidth := lipgloss.Width(m.scopeInput.Prompt)
	m.scopeInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

// cycleScope steps through all observed facilitator names, with the all
// scope between the end and the start.
func (m *Model) cycleScope(delta int) {
	names := m.rep.Facilitators
	if len(names) == 0 {
		return
	}
	current := -1
	if m.scope != report.ScopeAll {
		want := m.scope.Facilitator()
		for i, name := range names {
			if name == want {
				current = i
				break
			}
		}
	}
	next := current + delta
	switch {
	case next < -1:
		next = len(names) - 1
	case next >= len(names):
		next = -1
	}
	if next == -1 {
		m.scope = report.ScopeAll
	} else {
		m.scope = report.Scope(names[next])
	}
	m.refresh()
}

func (m *Model) cycleChart() {
	switch m.opts.Chart {
	case report.ChartAlternate:
		m.opts.Chart = report.ChartPie
	case report.ChartPie:
		m.opts.Chart = report.ChartBar
	default:
		m.opts.Chart = report.ChartAlternate
	}
	m.rep.Options = m.opts
	m.renderTabContents()
}

func (m *Model) startScopeInput() (tea.Model, tea.Cmd) {
	m.scopeInputMode = true
	m.scopeInputErr = ""
	if m.scope == report.ScopeAll {
		m.scopeInput.SetValue("")
	} else {
		m.scopeInput.SetValue(m.scope.Facilitator())
	}
	return m, m.scopeInput.Focus()
}

func (m *Model) updateScopeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.scopeInputMode = false
		m.scopeInputErr = ""
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.scopeInput.Value())
		if name == "" || name == "Todos" {
			m.scope = report.ScopeAll
		} else {
			if !m.knownFacilitator(name) {
				m.scopeInputErr = fmt.Sprintf("Facilitador desconocido %q.", name)
				return m, nil
			}
			m.scope = report.Scope(name)
		}
		m.scopeInputMode = false
		m.scopeInputErr = ""
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.scopeInput, cmd = m.scopeInput.Update(msg)
	return m, cmd
}

func (m *Model) knownFacilitator(name string) bool {
	for _, candidate := range m.rep.Facilitators {
		if candidate == name {
			return true
		}
	}
	return false
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
	scopeName := "Todos"
	if m.scope != report.ScopeAll {
		scopeName = m.scope.Facilitator()
	}
	summary := fmt.Sprintf("Evaluaciones de: %s  ·  respuestas: %d  ·  gráfico: %s",
		scopeName, m.rep.Total, chartName(m.opts.Chart))
	return tabs + "\n" + padLines(headerStyle.Render(truncateLine(summary, m.width)), m.width)
}

func chartName(mode report.ChartMode) string {
	switch mode {
	case report.ChartPie:
		return "pastel"
	case report.ChartBar:
		return "barras"
	default:
		return "alternado"
	}
}

func (m *Model) renderBody(height int) string {
	if m.errMsg != "" {
		return fitLines(errorStyle.Render("No se pudieron cargar las evaluaciones: "+m.errMsg), m.width, height)
	}
	if m.activeTab == tabResponses {
		if len(m.rep.Rows) == 0 {
			return fitLines("No hay respuestas registradas.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.respTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: izq/der  Alcance: f/F o /  Gráfico: c  Recargar: r  Salir: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	if n := len(m.rep.Anomalies); n > 0 {
		note := fmt.Sprintf("Valores descartados en los datos: %d (ver facilita report)", n)
		return help + "\n" + warnStyle.Render(truncateLine(note, m.width))
	}
	return help
}

func (m *Model) renderScopeModal() string {
	title := chartTitleStyle.Render("Seleccionar facilitador")
	body := []string{
		title,
		m.scopeInput.View(),
		headerStyle.Render("Nombres observados: " + strings.Join(m.rep.Facilitators, ", ")),
		headerStyle.Render("Enter aplica / Esc cancela"),
	}
	if m.scopeInputErr != "" {
		body = append(body, errorStyle.Render(m.scopeInputErr))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
