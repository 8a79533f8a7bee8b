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

type WebsiteStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.Website, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.Website, error)
	Create(ctx context.Context, s *db.Website) error
	Update(ctx context.Context, s *db.Website) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type WebsiteRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
}

type WebsiteResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WebsiteHandlers struct {
	store WebsiteStore
}

func NewWebsiteHandlers(store WebsiteStore) *WebsiteHandlers {
	return &WebsiteHandlers{store: store}
}

func (h *WebsiteHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("websites", "failed to list websites", err)
	}

	items := make([]*WebsiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, websiteResponse(s))
	}
	return writeList(w, r, items)
}

func (h *WebsiteHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	s, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("website")
		}
		return storeError("websites", "failed to load website", err)
	}

	return writeItem(w, r, http.StatusOK, websiteResponse(s))
}

func (h *WebsiteHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeWebsiteRequest(r)
	if err != nil {
		return err
	}

	s := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), s); err != nil {
		return storeError("websites", "failed to create website", err)
	}

	return writeItem(w, r, http.StatusCreated, websiteResponse(s))
}

func (h *WebsiteHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeWebsiteRequest(r)
	if err != nil {
		return err
	}

	s := req.toModel(identity.UserID)
	s.ID = id
	if err := h.store.Update(r.Context(), s); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("website")
		}
		return storeError("websites", "failed to update website", err)
	}

	return writeItem(w, r, http.StatusOK, websiteResponse(s))
}

func (h *WebsiteHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("website")
		}
		return storeError("websites", "failed to delete website", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeWebsiteRequest(r *http.Request) (*WebsiteRequest, error) {
	var req WebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func (req *WebsiteRequest) toModel(userID uuid.UUID) *db.Website {
	return &db.Website{
		UserID:      userID,
		Name:        req.Name,
		URL:         req.URL,
		Category:    req.Category,
		Description: req.Description,
		Favicon:     req.Favicon,
	}
}

func websiteResponse(s *db.Website) *WebsiteResponse {
	return &WebsiteResponse{
		ID:          s.ID,
		Name:        s.Name,
		URL:         s.URL,
		Category:    s.Category,
		Description: s.Description,
		Favicon:     s.Favicon,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
