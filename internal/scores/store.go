package scores

// Store defines the interface for leaderboard persistence
type Store interface {
	// Submit validates and saves a record, returning the stored copy.
	Submit(rec Record) (Record, error)
	// Top returns up to limit records for level, fastest first.
	Top(level string, limit int) ([]Record, error)
	// Levels lists every level with at least one record.
	Levels() ([]string, error)
	Close() error
}
