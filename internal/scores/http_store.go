package scores

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore is a Store backed by a remote score server.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore talks to the server at baseURL, e.g. "http://localhost:8080".
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Submit posts a record to the server
func (hs *HTTPStore) Submit(rec Record) (Record, error) {
	if err := rec.Normalize(); err != nil {
		return Record{}, err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode score: %w", err)
	}
	resp, err := hs.client.Post(hs.baseURL+"/api/scores", "application/json", bytes.NewReader(body))
	if err != nil {
		return Record{}, fmt.Errorf("failed to submit score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Record{}, responseError(resp)
	}
	var saved Record
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return Record{}, fmt.Errorf("failed to decode score: %w", err)
	}
	return saved, nil
}

// Top fetches the fastest records for a level
func (hs *HTTPStore) Top(level string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	u := fmt.Sprintf("%s/api/scores/%s?limit=%d", hs.baseURL, url.PathEscape(level), limit)
	resp, err := hs.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	var recs []Record
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("level %s: %w", level, ErrNotFound)
	}
	return recs, nil
}

// Levels fetches the levels that have records
func (hs *HTTPStore) Levels() ([]string, error) {
	resp, err := hs.client.Get(hs.baseURL + "/api/levels")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch levels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	var levels []string
	if err := json.NewDecoder(resp.Body).Decode(&levels); err != nil {
		return nil, fmt.Errorf("failed to decode levels: %w", err)
	}
	return levels, nil
}

// Close releases idle connections
func (hs *HTTPStore) Close() error {
	hs.client.CloseIdleConnections()
	return nil
}

// responseError maps a server error body back onto the package errors.
func responseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidRecord, body.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", body.Error, ErrNotFound)
	default:
		return fmt.Errorf("score server: %s: %s", resp.Status, body.Error)
	}
}
