// Package ingest turns form submissions into stored response rows.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/facilita-cr/facilita/internal/model"
	"github.com/facilita-cr/facilita/internal/store"
)

// ErrNoFacilitators rejects a submission that names no facilitator.
var ErrNoFacilitators = errors.New("at least one facilitator must be selected")

// Ingestor appends validated submissions to the store. Whether the form
// offers one facilitator or several, serialization is identical: names
// are comma-joined, so a single name is stored with no delimiter.
type Ingestor struct {
	store *store.Store
	now   func() time.Time
}

// New constructs an Ingestor writing to the given store.
func New(st *store.Store) *Ingestor {
	return &Ingestor{store: st, now: time.Now}
}

// NewWithClock constructs an Ingestor with an injectable clock.
func NewWithClock(st *store.Store, now func() time.Time) *Ingestor {
	return &Ingestor{store: st, now: now}
}

// Submit validates a submission, stamps it, and appends exactly one row.
// Append errors propagate to the caller; there is no retry.
func (in *Ingestor) Submit(ctx context.Context, sub model.Submission) (model.Response, error) {
	joined := model.JoinFacilitators(sub.Facilitators)
	if joined == "" {
		return model.Response{}, ErrNoFacilitators
	}
	r := model.Response{
		SubmittedAt:  in.now().Format(model.TimestampLayout),
		Participant:  sub.Participant,
		Position:     sub.Position,
		Delegation:   sub.Delegation,
		Facilitators: joined,
		WorkshopDate: sub.WorkshopDate,
		Ratings:      sub.Ratings,
		Positives:    sub.Positives,
		Suggestions:  sub.Suggestions,
	}
	if err := in.store.Append(ctx, r); err != nil {
		return model.Response{}, err
	}
	return r, nil
}
