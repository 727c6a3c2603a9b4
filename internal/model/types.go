// Package model defines shared data structures.
package model

import "strings"

// Category is one of the five fixed rating labels, best to worst.
type Category = string

// Fixed rating labels. Matching is exact: case- and accent-sensitive.
const (
	CategoryExcelente  Category = "Excelente"
	CategoryMuyBueno   Category = "Muy Bueno"
	CategoryBueno      Category = "Bueno"
	CategoryRegular    Category = "Regular"
	CategoryDeficiente Category = "Deficiente"
)

// NumCategories is the size of the fixed rating scale.
const NumCategories = 5

// NumQuestions is the number of rated questions per evaluation.
const NumQuestions = 10

var categories = [NumCategories]Category{
	CategoryExcelente,
	CategoryMuyBueno,
	CategoryBueno,
	CategoryRegular,
	CategoryDeficiente,
}

// Categories returns the fixed rating labels in best-to-worst order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	copy(out, categories[:])
	return out
}

// CategoryIndex returns the position of a label on the fixed scale,
// or -1 when the value does not match any label exactly.
func CategoryIndex(value string) int {
	for i, c := range categories {
		if value == c {
			return i
		}
	}
	return -1
}

// CategoryScore maps a label to an ordinal score (Excelente=5 .. Deficiente=1).
// Unknown values score 0.
func CategoryScore(value string) int {
	idx := CategoryIndex(value)
	if idx < 0 {
		return 0
	}
	return NumCategories - idx
}

// Question identifies one rated survey question.
type Question struct {
	ID    string
	Label string
}

var questions = [NumQuestions]Question{
	{ID: "P1", Label: "Dominio del tema"},
	{ID: "P2", Label: "Claridad en la exposición"},
	{ID: "P3", Label: "Organización de contenidos"},
	{ID: "P4", Label: "Uso de presentación"},
	{ID: "P5", Label: "Promueve participación"},
	{ID: "P6", Label: "Aclaración de dudas"},
	{ID: "P7", Label: "Metodología aplicada"},
	{ID: "P8", Label: "Actitud respetuosa"},
	{ID: "P9", Label: "Duración adecuada"},
	{ID: "P10", Label: "Cumplimiento de objetivos"},
}

// Questions returns the ten rated questions in P1..P10 order.
func Questions() []Question {
	out := make([]Question, NumQuestions)
	copy(out, questions[:])
	return out
}

// Prompts shown on the evaluation form, in P1..P10 order.
var prompts = [NumQuestions]string{
	"¿El facilitador demostró dominio del tema tratado?",
	"¿La exposición del facilitador fue clara y comprensible?",
	"¿El facilitador organizó de manera adecuada los contenidos del taller?",
	"¿El facilitador utilizó adecuadamente la presentación como apoyo?",
	"¿El facilitador promovió la participación activa de los asistentes?",
	"¿El facilitador aclaró dudas de manera efectiva?",
	"¿La metodología fue adecuada para alcanzar los objetivos?",
	"¿El facilitador mantuvo una actitud respetuosa y motivadora?",
	"¿La duración de las actividades fue adecuada?",
	"¿Se cumplieron los objetivos planteados al inicio del taller?",
}

// Prompts returns the full question prompts in P1..P10 order.
func Prompts() []string {
	out := make([]string, NumQuestions)
	copy(out, prompts[:])
	return out
}

// Response is one submitted evaluation as persisted in the store.
// SubmittedAt and WorkshopDate are kept in their at-rest string forms.
type Response struct {
	SubmittedAt  string
	Participant  string
	Position     string
	Delegation   string
	Facilitators string
	WorkshopDate string
	Ratings      [NumQuestions]string
	Positives    string
	Suggestions  string
}

// Submission is an evaluation in progress, before stamping and serialization.
type Submission struct {
	Participant  string
	Position     string
	Delegation   string
	Facilitators []string
	WorkshopDate string
	Ratings      [NumQuestions]string
	Positives    string
	Suggestions  string
}

// Trim normalizes the free-text and name fields of a response in place.
func (r *Response) Trim() {
	r.SubmittedAt = strings.TrimSpace(r.SubmittedAt)
	r.Participant = strings.TrimSpace(r.Participant)
	r.Position = strings.TrimSpace(r.Position)
	r.Delegation = strings.TrimSpace(r.Delegation)
	r.Facilitators = strings.TrimSpace(r.Facilitators)
	r.WorkshopDate = strings.TrimSpace(r.WorkshopDate)
	for i := range r.Ratings {
		r.Ratings[i] = strings.TrimSpace(r.Ratings[i])
	}
}

// DefaultRoster is the facilitator roster offered by the form when the
// config file does not provide one.
var DefaultRoster = []string{
	"Esteban Cordero Solórzano",
	"Pamela Montero Pérez",
	"Jannia Valles Brizuela",
	"Manfred Rivera Meneses",
	"Carlos Castro Loaiciga",
	"Adrián Alvarado García",
	"Luis Vásquez Solís",
}
