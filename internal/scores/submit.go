package scores

import "fmt"

// SubmitRun stores a finished run and describes how it ranks on its level.
func SubmitRun(store Store, rec Record) (Record, string, error) {
	saved, err := store.Submit(rec)
	if err != nil {
		return Record{}, "score not saved", err
	}
	top, err := store.Top(saved.Level, 1)
	if err != nil || len(top) == 0 {
		return saved, fmt.Sprintf("saved %.2fs", saved.Seconds), nil
	}
	if top[0].ID == saved.ID {
		return saved, fmt.Sprintf("new best %.2fs!", saved.Seconds), nil
	}
	return saved, fmt.Sprintf("saved %.2fs (best %.2fs by %s)", saved.Seconds, top[0].Seconds, top[0].Player), nil
}
