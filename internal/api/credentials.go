package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
)

type CredentialStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.Credential, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.Credential, error)
	Create(ctx context.Context, c *db.Credential) error
	Update(ctx context.Context, c *db.Credential) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type CredentialRequest struct {
	Site     string `json:"site" validate:"required,max=255"`
	SiteURL  string `json:"siteUrl" validate:"omitempty,url"`
	Login    string `json:"login" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Category string `json:"category" validate:"max=100"`
	Notes    string `json:"notes"`
}

// Password is returned verbatim; the vault stores entries as entered.
type CredentialResponse struct {
	ID        int64     `json:"id"`
	Site      string    `json:"site"`
	SiteURL   string    `json:"siteUrl,omitempty"`
	Login     string    `json:"login"`
	Password  string    `json:"password"`
	Category  string    `json:"category,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CredentialHandlers struct {
	store CredentialStore
}

func NewCredentialHandlers(store CredentialStore) *CredentialHandlers {
	return &CredentialHandlers{store: store}
}

func (h *CredentialHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("credentials", "failed to list credentials", err)
	}

	items := make([]*CredentialResponse, 0, len(list))
	for _, c := range list {
		items = append(items, credentialResponse(c))
	}
	return writeList(w, r, items)
}

func (h *CredentialHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	c, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("credential")
		}
		return storeError("credentials", "failed to load credential", err)
	}

	return writeItem(w, r, http.StatusOK, credentialResponse(c))
}

func (h *CredentialHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeCredentialRequest(r)
	if err != nil {
		return err
	}

	c := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), c); err != nil {
		return storeError("credentials", "failed to create credential", err)
	}

	return writeItem(w, r, http.StatusCreated, credentialResponse(c))
}

func (h *CredentialHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeCredentialRequest(r)
	if err != nil {
		return err
	}

	c := req.toModel(identity.UserID)
	c.ID = id
	if err := h.store.Update(r.Context(), c); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("credential")
		}
		return storeError("credentials", "failed to update credential", err)
	}

	return writeItem(w, r, http.StatusOK, credentialResponse(c))
}

func (h *CredentialHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("credential")
		}
		return storeError("credentials", "failed to delete credential", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeCredentialRequest(r *http.Request) (*CredentialRequest, error) {
	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func (req *CredentialRequest) toModel(userID uuid.UUID) *db.Credential {
	return &db.Credential{
		UserID:   userID,
		Site:     req.Site,
		SiteURL:  req.SiteURL,
		Login:    req.Login,
		Password: req.Password,
		Category: req.Category,
		Notes:    req.Notes,
	}
}

func credentialResponse(c *db.Credential) *CredentialResponse {
	return &CredentialResponse{
		ID:        c.ID,
		Site:      c.Site,
		SiteURL:   c.SiteURL,
		Login:     c.Login,
		Password:  c.Password,
		Category:  c.Category,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
