package provider

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// stubRows yields a fixed number of provider rows, then reports iterErr,
// mimicking a connection that drops mid-result.
type stubRows struct {
	pgx.Rows
	remaining int
	iterErr   error
	closed    bool
}

func (r *stubRows) Next() bool {
	if r.remaining == 0 {
		return false
	}
	r.remaining--
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	*(dest[0].(*uuid.UUID)) = uuid.New()
	*(dest[1].(*string)) = "Dr. Silva"
	*(dest[3].(*float64)) = 150
	*(dest[6].(*string)) = "08:00"
	*(dest[7].(*string)) = "18:00"
	*(dest[9].(*time.Time)) = time.Now()
	*(dest[10].(*time.Time)) = time.Now()
	return nil
}

func (r *stubRows) Err() error { return r.iterErr }
func (r *stubRows) Close()     { r.closed = true }

func TestCollectProviders(t *testing.T) {
	rows := &stubRows{remaining: 2}

	items, err := collectProviders(rows)
	if err != nil {
		t.Fatalf("collectProviders: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d providers, want 2", len(items))
	}
	if items[0].FullName != "Dr. Silva" {
		t.Errorf("full name = %q, want Dr. Silva", items[0].FullName)
	}
	if !rows.closed {
		t.Error("rows must be closed after draining")
	}
}

func TestCollectProviders_IterationError(t *testing.T) {
	dropped := errors.New("connection reset")
	rows := &stubRows{remaining: 1, iterErr: dropped}

	_, err := collectProviders(rows)
	if !errors.Is(err, dropped) {
		t.Fatalf("expected the iteration error to surface, got %v", err)
	}
}
