// Package formui provides the Bubble Tea evaluation form.
package formui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facilita-cr/facilita/internal/ingest"
	"github.com/facilita-cr/facilita/internal/model"
)

// Field positions in focus order.
const (
	fieldParticipant = iota
	fieldPosition
	fieldDelegation
	fieldFacilitators
	fieldDate
	fieldFirstRating
	fieldPositives   = fieldFirstRating + model.NumQuestions
	fieldSuggestions = fieldPositives + 1
	fieldSubmit      = fieldSuggestions + 1
	fieldCount       = fieldSubmit + 1
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	pickedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	buttonStyle  = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	buttonFocusStyle = buttonStyle.
				BorderForeground(lipgloss.Color("#C89A3A")).
				Bold(true)
)

// Model implements the Bubble Tea evaluation form.
type Model struct {
	ingestor *ingest.Ingestor
	roster   []string
	single   bool

	width  int
	height int
	scroll int

	inputs    [3]textinput.Model
	dateInput textinput.Model
	positives textarea.Model
	sugerenc  textarea.Model

	facPicked map[int]struct{}
	facCursor int

	ratings [model.NumQuestions]int

	focus     int
	status    string
	statusErr bool
}

// NewModel constructs the evaluation form. When single is set the form
// accepts exactly one facilitator; serialization is unchanged either way.
func NewModel(in *ingest.Ingestor, roster []string, single bool) *Model {
	m := &Model{
		ingestor:  in,
		roster:    roster,
		single:    single,
		facPicked: map[int]struct{}{},
	}
	labels := []string{"Nombre del Participante", "Puesto", "Delegación"}
	for i := range m.inputs {
		m.inputs[i] = newTextInput(labels[i])
	}
	m.dateInput = newTextInput("Fecha del Taller")
	m.dateInput.Placeholder = model.DateLayout
	m.dateInput.SetValue(time.Now().Format(model.DateLayout))
	m.positives = newNotesArea("Aspectos positivos del desempeño del facilitador")
	m.sugerenc = newNotesArea("Sugerencias para mejorar futuras sesiones")
	m.setFocus(fieldParticipant)
	return m
}

func newTextInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newNotesArea(placeholder string) textarea.Model {
	area := textarea.New()
	area.Placeholder = placeholder
	area.SetHeight(3)
	area.ShowLineNumbers = false
	return area
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			m.moveFocus(1)
			return m, nil
		case tea.KeyShiftTab:
			m.moveFocus(-1)
			return m, nil
		}
		return m.updateField(msg)
	}
	return m, nil
}

func (m *Model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.focus < fieldFacilitators:
		if msg.Type == tea.KeyEnter {
			m.moveFocus(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	case m.focus == fieldFacilitators:
		return m.updateFacilitators(msg)
	case m.focus == fieldDate:
		if msg.Type == tea.KeyEnter {
			m.moveFocus(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		return m, cmd
	case m.focus < fieldPositives:
		m.updateRating(msg)
		return m, nil
	case m.focus == fieldPositives:
		var cmd tea.Cmd
		m.positives, cmd = m.positives.Update(msg)
		return m, cmd
	case m.focus == fieldSuggestions:
		var cmd tea.Cmd
		m.sugerenc, cmd = m.sugerenc.Update(msg)
		return m, cmd
	case m.focus == fieldSubmit:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			m.submit()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFacilitators(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.facCursor > 0 {
			m.facCursor--
		}
	case "down", "j":
		if m.facCursor < len(m.roster)-1 {
			m.facCursor++
		}
	case " ", "enter", "x":
		m.toggleFacilitator(m.facCursor)
	}
	return m, nil
}

func (m *Model) toggleFacilitator(idx int) {
	if idx < 0 || idx >= len(m.roster) {
		return
	}
	if _, ok := m.facPicked[idx]; ok {
		delete(m.facPicked, idx)
		return
	}
	if m.single {
		// Single-facilitator form: picking replaces the selection.
		m.facPicked = map[int]struct{}{}
	}
	m.facPicked[idx] = struct{}{}
}

func (m *Model) updateRating(msg tea.KeyMsg) {
	qi := m.focus - fieldFirstRating
	switch msg.String() {
	case "left", "h":
		if m.ratings[qi] > 0 {
			m.ratings[qi]--
		}
	case "right", "l":
		if m.ratings[qi] < model.NumCategories-1 {
			m.ratings[qi]++
		}
	case "1", "2", "3", "4", "5":
		m.ratings[qi] = int(msg.String()[0] - '1')
	}
}

func (m *Model) moveFocus(delta int) {
	next := m.focus + delta
	if next < 0 {
		next = fieldCount - 1
	}
	if next >= fieldCount {
		next = 0
	}
	m.setFocus(next)
}

func (m *Model) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if idx == i {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if idx == fieldDate {
		m.dateInput.Focus()
	} else {
		m.dateInput.Blur()
	}
	if idx == fieldPositives {
		m.positives.Focus()
	} else {
		m.positives.Blur()
	}
	if idx == fieldSuggestions {
		m.sugerenc.Focus()
	} else {
		m.sugerenc.Blur()
	}
}

func (m *Model) resizeInputs() {
	width := m.contentWidth()
	for i := range m.inputs {
		m.inputs[i].Width = width - 2
	}
	m.dateInput.Width = width - 2
	m.positives.SetWidth(width)
	m.sugerenc.SetWidth(width)
}

func (m *Model) contentWidth() int {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	return width
}

func (m *Model) selectedFacilitators() []string {
	out := make([]string, 0, len(m.facPicked))
	for i, name := range m.roster {
		if _, ok := m.facPicked[i]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (m *Model) submit() {
	date := strings.TrimSpace(m.dateInput.Value())
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		m.setStatus(fmt.Sprintf("Fecha inválida %q (formato %s).", date, model.DateLayout), true)
		return
	}

	sub := model.Submission{
		Participant:  strings.TrimSpace(m.inputs[fieldParticipant].Value()),
		Position:     strings.TrimSpace(m.inputs[fieldPosition].Value()),
		Delegation:   strings.TrimSpace(m.inputs[fieldDelegation].Value()),
		Facilitators: m.selectedFacilitators(),
		WorkshopDate: date,
		Positives:    strings.TrimSpace(m.positives.Value()),
		Suggestions:  strings.TrimSpace(m.sugerenc.Value()),
	}
	categories := model.Categories()
	for i, idx := range m.ratings {
		sub.Ratings[i] = categories[idx]
	}

	if _, err := m.ingestor.Submit(context.Background(), sub); err != nil {
		if errors.Is(err, ingest.ErrNoFacilitators) {
			m.setStatus("Debes seleccionar al menos un facilitador antes de enviar.", true)
			return
		}
		// Fields are retained so the user can resubmit.
		m.setStatus(fmt.Sprintf("No se pudo guardar la evaluación: %v", err), true)
		return
	}
	m.setStatus("Evaluación enviada correctamente.", false)
	m.reset()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.dateInput.SetValue(time.Now().Format(model.DateLayout))
	m.positives.SetValue("")
	m.sugerenc.SetValue("")
	m.facPicked = map[int]struct{}{}
	m.facCursor = 0
	m.ratings = [model.NumQuestions]int{}
	m.setFocus(fieldParticipant)
}
