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

func movieRouter(store *fakeMovieStore, identity *auth.Identity) http.Handler {
	h := NewMovieHandlers(store)
	return newEntityRouter(identity, "/movies", h.List, h.Get, h.Create, h.Update, h.Delete)
}

func TestMovieCreateWithOptionalFields(t *testing.T) {
	store := newFakeMovieStore()
	router := movieRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/movies", map[string]any{
		"title":          "Perfect Blue",
		"status":         "completed",
		"rating":         9.0,
		"releaseYear":    1997,
		"director":       "Satoshi Kon",
		"runtimeMinutes": 81,
		"genres":         []string{"thriller"},
		"cast":           []string{"Junko Iwao"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created MovieResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Director)
	assert.Equal(t, "Satoshi Kon", *created.Director)
	require.NotNil(t, created.RuntimeMinutes)
	assert.Equal(t, 81, *created.RuntimeMinutes)
	require.NotNil(t, created.ReleaseYear)
	assert.Equal(t, 1997, *created.ReleaseYear)
}

func TestMovieCreateWithoutOptionalFields(t *testing.T) {
	store := newFakeMovieStore()
	router := movieRouter(store, testIdentity())

	rec := doJSON(t, router, http.MethodPost, "/movies", map[string]any{"title": "Paprika"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created MovieResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Nil(t, created.Director)
	assert.Nil(t, created.RuntimeMinutes)
	assert.Equal(t, "planned", created.Status)
	assert.NotNil(t, created.Genres)
	assert.NotNil(t, created.Cast)
}

func TestMovieReleaseYearBounds(t *testing.T) {
	store := newFakeMovieStore()
	router := movieRouter(store, testIdentity())

	for _, year := range []int{1700, 2500} {
		rec := doJSON(t, router, http.MethodPost, "/movies", map[string]any{
			"title":       "x",
			"releaseYear": year,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "year %d", year)
	}
}

func TestMovieOwnershipScoping(t *testing.T) {
	store := newFakeMovieStore()
	alice := testIdentity()
	bob := testIdentity()

	rec := doJSON(t, movieRouter(store, alice), http.MethodPost, "/movies", map[string]any{"title": "Paprika"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created MovieResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, movieRouter(store, bob), http.MethodGet, fmt.Sprintf("/movies/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
