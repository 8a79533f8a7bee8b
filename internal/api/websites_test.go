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

func websiteRouter(store *fakeWebsiteStore, identity *auth.Identity) http.Handler {
	h := NewWebsiteHandlers(store)
	return newEntityRouter(identity, "/websites", h.List, h.Get, h.Create, h.Update, h.Delete)
}

func TestWebsiteCreate(t *testing.T) {
	store := newFakeWebsiteStore()
	router := websiteRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/websites", map[string]any{
		"name":        "MyAnimeList",
		"url":         "https://myanimelist.net",
		"category":    "tracking",
		"description": "season charts",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created WebsiteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "MyAnimeList", created.Name)
	assert.Equal(t, "https://myanimelist.net", created.URL)
}

func TestWebsiteURLValidation(t *testing.T) {
	store := newFakeWebsiteStore()
	router := websiteRouter(store, testIdentity())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing url", map[string]any{"name": "x"}},
		{"not a url", map[string]any{"name": "x", "url": "not a url"}},
		{"missing name", map[string]any{"url": "https://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/websites", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestWebsiteUpdateAndDelete(t *testing.T) {
	store := newFakeWebsiteStore()
	router := websiteRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/websites", map[string]any{
		"name": "MAL",
		"url":  "https://myanimelist.net",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created WebsiteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := fmt.Sprintf("/websites/%d", created.ID)

	rec = doJSON(t, router, http.MethodPut, path, map[string]any{
		"name": "MyAnimeList",
		"url":  "https://myanimelist.net",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated WebsiteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "MyAnimeList", updated.Name)

	rec = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
