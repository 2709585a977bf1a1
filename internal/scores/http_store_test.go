package scores

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStore_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, WithLevels("gauntlet", "courtyard"))
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	var store Store = NewHTTPStore(ts.URL + "/")
	defer store.Close()

	_, err := store.Submit(NewRecord("gauntlet", "ada", 25, 1, 196))
	require.NoError(t, err)
	_, err = store.Submit(NewRecord("gauntlet", "bob", 19, 0, 196))
	require.NoError(t, err)

	top, err := store.Top("gauntlet", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "bob", top[0].Player)

	levels, err := store.Levels()
	require.NoError(t, err)
	assert.Equal(t, []string{"gauntlet"}, levels)

	_, err = store.Top("courtyard", 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Submit(NewRecord("moon", "ada", 3, 0, 0))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Submit(Record{Level: "gauntlet"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
