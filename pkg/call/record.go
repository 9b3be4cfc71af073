package call

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no record exists for an ID.
var ErrNotFound = errors.New("call record not found")

// Record is the audit trail of one call: when it ran, which phone system
// answered, and every prompt the caller heard in order.
type Record struct {
	ID        string    `json:"id"`
	System    string    `json:"system"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Prompts   []string  `json:"prompts"`
}

// Duration reports how long the call lasted, zero while still in progress.
func (r Record) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Store persists call records. Defined here rather than in pkg/ports because
// this package is its only producer and pkg/ports would otherwise import the
// call types back.
type Store interface {
	// Save upserts a record.
	Save(ctx context.Context, rec Record) error
	// Load fetches one record by ID, ErrNotFound when absent.
	Load(ctx context.Context, id string) (Record, error)
	// List returns the most recent records, newest first, capped at limit
	// (limit <= 0 means no cap).
	List(ctx context.Context, limit int) ([]Record, error)
}
