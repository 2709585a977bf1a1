package scores

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// JSONStore keeps the leaderboard in a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

// jsonData represents the structure of the JSON file
type jsonData struct {
	Records map[string][]Record `json:"records"` // keyed by level
}

// NewJSONStore opens filePath, creating it if it does not exist
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{Records: make(map[string][]Record)},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load score file: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create score file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Records == nil {
		js.data.Records = make(map[string][]Record)
	}
	return nil
}

// saveToFile writes the whole leaderboard. Callers hold the write lock.
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, data, 0644)
}

// Submit saves a record
func (js *JSONStore) Submit(rec Record) (Record, error) {
	if err := rec.Normalize(); err != nil {
		return Record{}, err
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()

	if js.hasID(rec.ID) {
		return Record{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, rec.ID)
	}
	recs := append(js.data.Records[rec.Level], rec)
	sortRecords(recs)
	js.data.Records[rec.Level] = recs
	if err := js.saveToFile(); err != nil {
		return Record{}, fmt.Errorf("failed to save score: %w", err)
	}
	return rec, nil
}

// hasID reports whether any level already holds id. Callers hold the lock.
func (js *JSONStore) hasID(id string) bool {
	for _, recs := range js.data.Records {
		for _, r := range recs {
			if r.ID == id {
				return true
			}
		}
	}
	return false
}

// Top returns the fastest records for a level
func (js *JSONStore) Top(level string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	js.mutex.RLock()
	defer js.mutex.RUnlock()

	recs, ok := js.data.Records[level]
	if !ok {
		return nil, fmt.Errorf("level %s: %w", level, ErrNotFound)
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}

// Levels lists levels that have records
func (js *JSONStore) Levels() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	out := make([]string, 0, len(js.data.Records))
	for level := range js.data.Records {
		out = append(out, level)
	}
	sort.Strings(out)
	return out, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
