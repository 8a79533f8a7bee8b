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

func credentialRouter(store *fakeCredentialStore, identity *auth.Identity) http.Handler {
	h := NewCredentialHandlers(store)
	return newEntityRouter(identity, "/credentials", h.List, h.Get, h.Create, h.Update, h.Delete)
}

func TestCredentialRoundTripsPasswordVerbatim(t *testing.T) {
	store := newFakeCredentialStore()
	router := credentialRouter(store, testIdentity())

	const password = "hunter2!with spaces & symbols"

	rec := doJSON(t, router, http.MethodPost, "/credentials", map[string]any{
		"site":     "crunchyroll",
		"siteUrl":  "https://www.crunchyroll.com",
		"login":    "mika@example.com",
		"password": password,
		"category": "streaming",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, password, created.Password)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/credentials/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, password, got.Password)
}

func TestCredentialValidation(t *testing.T) {
	store := newFakeCredentialStore()
	router := credentialRouter(store, testIdentity())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing site", map[string]any{"login": "a", "password": "b"}},
		{"missing login", map[string]any{"site": "a", "password": "b"}},
		{"missing password", map[string]any{"site": "a", "login": "b"}},
		{"bad site url", map[string]any{"site": "a", "login": "b", "password": "c", "siteUrl": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/credentials", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCredentialVaultIsPerUser(t *testing.T) {
	store := newFakeCredentialStore()
	alice := testIdentity()
	bob := testIdentity()

	rec := doJSON(t, credentialRouter(store, alice), http.MethodPost, "/credentials", map[string]any{
		"site":     "crunchyroll",
		"login":    "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	bobRouter := credentialRouter(store, bob)

	rec = doJSON(t, bobRouter, http.MethodGet, fmt.Sprintf("/credentials/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, bobRouter, http.MethodGet, "/credentials", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list ListResponse[*CredentialResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Zero(t, list.Total)
}
