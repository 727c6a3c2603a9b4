package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/facilita-cr/facilita/internal/model"
)

func testResponse() model.Response {
	r := model.Response{
		SubmittedAt:  "2024-05-02 10:30:00",
		Participant:  "María",
		Position:     "Analista",
		Delegation:   "San José",
		Facilitators: "Ana, Beto",
		WorkshopDate: "2024-05-01",
		Positives:    "Buen ritmo",
		Suggestions:  "Más ejemplos",
	}
	for i := range r.Ratings {
		r.Ratings[i] = model.CategoryExcelente
	}
	return r
}

func TestAppendListRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facilita.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	ctx := context.Background()
	want := testResponse()
	if err := st.Append(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := st.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}
	if got[0] != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got[0], want)
	}
}

func TestListTrimsFields(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facilita.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	r := testResponse()
	r.Participant = "  María  "
	r.Facilitators = " Ana ,Beto "
	if err := st.Append(ctx, r); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := st.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Participant != "María" {
		t.Fatalf("participant not trimmed: %q", got[0].Participant)
	}
}

func TestAppendOnlyOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facilita.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	for _, name := range []string{"Ana", "Beto", "Carla"} {
		r := testResponse()
		r.Participant = name
		if err := st.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", name, err)
		}
	}
	got, err := st.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(got))
	}
	for i, name := range []string{"Ana", "Beto", "Carla"} {
		if got[i].Participant != name {
			t.Fatalf("row %d participant = %q, want %q", i, got[i].Participant, name)
		}
	}
}

func TestOpenRejectsDriftedSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facilita.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE responses (
		id INTEGER PRIMARY KEY,
		submitted_at TEXT NOT NULL,
		participant_name TEXT NOT NULL
	);`)
	if cerr := db.Close(); cerr != nil {
		t.Fatalf("close raw db: %v", cerr)
	}
	if err != nil {
		t.Fatalf("create drifted table: %v", err)
	}

	_, err = Open(dbPath)
	if err == nil {
		t.Fatal("expected schema mismatch error")
	}
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("error = %v, want ErrSchemaMismatch", err)
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "facilita.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open with missing parents: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
