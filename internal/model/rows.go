package model

import (
	"fmt"
	"strings"
)

// Layouts for the at-rest time fields.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// NumColumns is the width of the stable row schema shared by ingestion
// and reporting.
const NumColumns = 18

var columnNames = [NumColumns]string{
	"submitted_at",
	"participant_name",
	"position",
	"delegation",
	"facilitators",
	"workshop_date",
	"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9", "P10",
	"positive_notes",
	"suggestions",
}

// ColumnNames returns the ordered column names of the row schema.
func ColumnNames() []string {
	out := make([]string, NumColumns)
	copy(out, columnNames[:])
	return out
}

// Row flattens a response into the ordered 17-field wire form.
func (r Response) Row() []string {
	row := make([]string, 0, NumColumns)
	row = append(row, r.SubmittedAt, r.Participant, r.Position, r.Delegation, r.Facilitators, r.WorkshopDate)
	row = append(row, r.Ratings[:]...)
	row = append(row, r.Positives, r.Suggestions)
	return row
}

// ResponseFromRow rebuilds a response from an ordered row.
func ResponseFromRow(row []string) (Response, error) {
	if len(row) != NumColumns {
		return Response{}, fmt.Errorf("expected %d columns, got %d", NumColumns, len(row))
	}
	r := Response{
		SubmittedAt:  row[0],
		Participant:  row[1],
		Position:     row[2],
		Delegation:   row[3],
		Facilitators: row[4],
		WorkshopDate: row[5],
		Positives:    row[NumColumns-2],
		Suggestions:  row[NumColumns-1],
	}
	copy(r.Ratings[:], row[6:6+NumQuestions])
	return r, nil
}

// JoinFacilitators serializes facilitator names into the at-rest form:
// a comma+space join of the trimmed names. A single name produces output
// identical to writing the name with no delimiter.
func JoinFacilitators(names []string) string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kept = append(kept, name)
	}
	return strings.Join(kept, ", ")
}

// SplitFacilitators parses the at-rest form back into names. The split
// tolerates zero or more spaces around each comma; empty segments are
// dropped, so an empty field yields no names.
func SplitFacilitators(joined string) []string {
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}
