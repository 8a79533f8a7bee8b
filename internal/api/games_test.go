package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
)

func gameRouter(store *fakeGameStore, identity *auth.Identity) http.Handler {
	h := NewGameHandlers(store)
	return newEntityRouter(identity, "/games", h.List, h.Get, h.Create, h.Update, h.Delete)
}

func TestGameCreateWithProgressFields(t *testing.T) {
	store := newFakeGameStore()
	router := gameRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/games", map[string]any{
		"title":       "Hades II",
		"status":      "playing",
		"rating":      9.5,
		"platforms":   []string{"pc", "switch"},
		"genres":      []string{"roguelike"},
		"hoursPlayed": 43.5,
		"completion":  62,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "playing", created.Status)
	assert.Equal(t, []string{"pc", "switch"}, created.Platforms)
	require.NotNil(t, created.HoursPlayed)
	assert.Equal(t, 43.5, *created.HoursPlayed)
	require.NotNil(t, created.Completion)
	assert.Equal(t, 62, *created.Completion)
}

func TestGameStatusVocabulary(t *testing.T) {
	store := newFakeGameStore()
	router := gameRouter(store, testIdentity())

	// Games use "playing" where the watch collections use "watching".
	rec := doJSON(t, router, http.MethodPost, "/games", map[string]any{
		"title":  "Hades II",
		"status": "watching",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/games", map[string]any{
		"title":  "Hades II",
		"status": "playing",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGameCompletionBounds(t *testing.T) {
	store := newFakeGameStore()
	router := gameRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/games", map[string]any{
		"title":      "Hades II",
		"completion": 101,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/games", map[string]any{
		"title":       "Hades II",
		"hoursPlayed": -1.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
