package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
)

func kdramaRouter(store *fakeKDramaStore, identity *auth.Identity) http.Handler {
	h := NewKDramaHandlers(store)
	return newEntityRouter(identity, "/kdramas", h.List, h.Get, h.Create, h.Update, h.Delete)
}

func TestKDramaCreateAndGet(t *testing.T) {
	store := newFakeKDramaStore()
	identity := testIdentity()
	router := kdramaRouter(store, identity)

	rating := 9.0
	rec := doJSON(t, router, http.MethodPost, "/kdramas", map[string]any{
		"title":           "Crash Landing on You",
		"status":          "completed",
		"rating":          rating,
		"episodesWatched": 16,
		"totalEpisodes":   16,
		"genres":          []string{"romance", "drama"},
		"cast":            []string{"Hyun Bin", "Son Ye-jin"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Crash Landing on You", created.Title)
	assert.Equal(t, "completed", created.Status)
	require.NotNil(t, created.Rating)
	assert.Equal(t, rating, *created.Rating)
	assert.Equal(t, 16, created.EpisodesWatched)
	assert.Equal(t, []string{"Hyun Bin", "Son Ye-jin"}, created.Cast)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/kdramas/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"romance", "drama"}, got.Genres)
	assert.Equal(t, []string{"Hyun Bin", "Son Ye-jin"}, got.Cast)
}

func TestKDramaCreateDefaultsStatus(t *testing.T) {
	store := newFakeKDramaStore()
	router := kdramaRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/kdramas", map[string]any{
		"title": "Signal",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "planned", created.Status)
	assert.Nil(t, created.Rating)
	assert.NotNil(t, created.Genres)
	assert.NotNil(t, created.Cast)
}

func TestKDramaCreateValidation(t *testing.T) {
	store := newFakeKDramaStore()
	router := kdramaRouter(store, testIdentity())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"status": "watching"}},
		{"bad status", map[string]any{"title": "Goblin", "status": "bingeing"}},
		{"rating above scale", map[string]any{"title": "Goblin", "rating": 10.5}},
		{"negative episodes", map[string]any{"title": "Goblin", "episodesWatched": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/kdramas", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestKDramaOtherUsersRowIsNotFound(t *testing.T) {
	store := newFakeKDramaStore()
	owner := testIdentity()
	ownerRouter := kdramaRouter(store, owner)

	rec := doJSON(t, ownerRouter, http.MethodPost, "/kdramas", map[string]any{
		"title": "Reply 1988",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := fmt.Sprintf("/kdramas/%d", created.ID)

	// Existence of another user's row must be indistinguishable from absence.
	otherRouter := kdramaRouter(store, testIdentity())
	rec = doJSON(t, otherRouter, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, otherRouter, http.MethodPut, path, map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, otherRouter, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, ownerRouter, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestKDramaUpdateReplacesRow(t *testing.T) {
	store := newFakeKDramaStore()
	router := kdramaRouter(store, testIdentity())

	rating := 8.0
	rec := doJSON(t, router, http.MethodPost, "/kdramas", map[string]any{
		"title":  "Vincenzo",
		"status": "watching",
		"rating": rating,
		"notes":  "episode 4",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/kdramas/%d", created.ID), map[string]any{
		"title":  "Vincenzo",
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated.Status)
	assert.Nil(t, updated.Rating, "omitted field must be cleared")
	assert.Empty(t, updated.Notes)
}

func TestKDramaDelete(t *testing.T) {
	store := newFakeKDramaStore()
	router := kdramaRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/kdramas", map[string]any{"title": "Kingdom"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created KDramaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := fmt.Sprintf("/kdramas/%d", created.ID)

	rec = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
