package formui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/facilita-cr/facilita/internal/model"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lines, focusLine := m.renderForm()
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.scrollTo(focusLine, len(lines), bodyHeight)
	end := m.scroll + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[m.scroll:end], "\n")
	for i := end - m.scroll; i < bodyHeight; i++ {
		body += "\n"
	}
	return body + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

// scrollTo keeps the focused field inside the visible window.
func (m *Model) scrollTo(focusLine, total, height int) {
	if focusLine < m.scroll {
		m.scroll = focusLine
	}
	if focusLine >= m.scroll+height {
		m.scroll = focusLine - height + 1
	}
	maxScroll := total - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// renderForm builds every form line and reports the first line of the
// focused field.
func (m *Model) renderForm() ([]string, int) {
	var lines []string
	focusLine := 0
	mark := func(field int) {
		if m.focus == field {
			focusLine = len(lines)
		}
	}

	lines = append(lines, titleStyle.Render("Evaluación de equipo Estrategia Sembremos Seguridad"), "")

	inputLabels := []string{"Nombre del Participante:", "Puesto:", "Delegación:"}
	for i := range m.inputs {
		mark(i)
		lines = append(lines, m.fieldLabel(inputLabels[i], i), m.inputs[i].View(), "")
	}

	mark(fieldFacilitators)
	label := "Facilitadores:"
	if m.single {
		label = "Facilitador:"
	}
	lines = append(lines, m.fieldLabel(label, fieldFacilitators))
	lines = append(lines, m.renderRoster()...)
	lines = append(lines, "")

	mark(fieldDate)
	lines = append(lines, m.fieldLabel("Fecha del Taller:", fieldDate), m.dateInput.View(), "")

	prompts := model.Prompts()
	for qi := 0; qi < model.NumQuestions; qi++ {
		field := fieldFirstRating + qi
		mark(field)
		lines = append(lines, m.fieldLabel(prompts[qi], field), m.renderScale(qi), "")
	}

	mark(fieldPositives)
	lines = append(lines, m.fieldLabel("Aspectos positivos del desempeño del facilitador:", fieldPositives))
	lines = append(lines, strings.Split(m.positives.View(), "\n")...)
	lines = append(lines, "")

	mark(fieldSuggestions)
	lines = append(lines, m.fieldLabel("Sugerencias para mejorar futuras sesiones:", fieldSuggestions))
	lines = append(lines, strings.Split(m.sugerenc.View(), "\n")...)
	lines = append(lines, "")

	mark(fieldSubmit)
	button := buttonStyle
	if m.focus == fieldSubmit {
		button = buttonFocusStyle
	}
	lines = append(lines, strings.Split(button.Render("Enviar Evaluación"), "\n")...)

	return lines, focusLine
}

func (m *Model) fieldLabel(text string, field int) string {
	if m.focus == field {
		return focusedStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m *Model) renderRoster() []string {
	lines := make([]string, 0, len(m.roster))
	for i, name := range m.roster {
		marker := "[ ]"
		style := optionStyle
		if _, ok := m.facPicked[i]; ok {
			marker = "[x]"
			style = pickedStyle
		}
		prefix := "  "
		if m.focus == fieldFacilitators && i == m.facCursor {
			prefix = focusedStyle.Render("> ")
		}
		lines = append(lines, prefix+style.Render(marker+" "+name))
	}
	return lines
}

func (m *Model) renderScale(qi int) string {
	parts := make([]string, 0, model.NumCategories)
	for ci, cat := range model.Categories() {
		if m.ratings[qi] == ci {
			parts = append(parts, pickedStyle.Render("(•) "+cat))
		} else {
			parts = append(parts, optionStyle.Render("( ) "+cat))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	line := m.status
	if m.statusErr {
		line = errorStyle.Render(line)
	} else {
		line = successStyle.Render(line)
	}
	return truncateLine(line, m.width)
}

func (m *Model) renderHelp() string {
	help := "tab/shift+tab: campo  espacio: marcar  izq/der: escala  enter: enviar  ctrl+c: salir"
	return helpStyle.Render(truncateLine(help, m.width))
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return fmt.Sprintf("%s...", string(runes[:width-3]))
}
