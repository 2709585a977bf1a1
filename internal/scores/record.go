package scores

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record or level has no entries.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRecord is returned when a submission fails validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// DefaultLimit is how many records Top returns when the caller asks for zero.
const DefaultLimit = 10

// Record is one finished, winning run.
type Record struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Player  string    `json:"player"`
	Seconds float64   `json:"seconds"`
	Barrels int       `json:"barrels"`
	Total   int       `json:"total"`
	At      time.Time `json:"at"`
}

// NewRecord builds a record with a fresh ID and timestamp.
func NewRecord(level, player string, seconds float64, barrels, total int) Record {
	return Record{
		ID:      uuid.New().String(),
		Level:   level,
		Player:  player,
		Seconds: seconds,
		Barrels: barrels,
		Total:   total,
		At:      time.Now().UTC(),
	}
}

// Normalize fills missing fields on a submitted record and validates it.
func (r *Record) Normalize() error {
	r.Level = strings.TrimSpace(r.Level)
	r.Player = strings.TrimSpace(r.Player)
	if r.Level == "" {
		return fmt.Errorf("%w: level is required", ErrInvalidRecord)
	}
	if r.Seconds <= 0 {
		return fmt.Errorf("%w: seconds must be positive", ErrInvalidRecord)
	}
	if r.Barrels < 0 || r.Total < 0 || r.Barrels > r.Total {
		return fmt.Errorf("%w: barrels %d/%d", ErrInvalidRecord, r.Barrels, r.Total)
	}
	if r.Player == "" {
		r.Player = "anonymous"
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("%w: id: %v", ErrInvalidRecord, err)
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	return nil
}

// sortRecords orders fastest first; ties go to the earlier run.
func sortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Seconds != recs[j].Seconds {
			return recs[i].Seconds < recs[j].Seconds
		}
		return recs[i].At.Before(recs[j].At)
	})
}
