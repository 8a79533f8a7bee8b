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

type KDramaStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.KDrama, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.KDrama, error)
	Create(ctx context.Context, k *db.KDrama) error
	Update(ctx context.Context, k *db.KDrama) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type KDramaRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Status          string   `json:"status" validate:"omitempty,oneof=watching completed on_hold dropped planned"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	EpisodesWatched int      `json:"episodesWatched" validate:"gte=0"`
	TotalEpisodes   int      `json:"totalEpisodes" validate:"gte=0"`
	Genres          []string `json:"genres"`
	Cast            []string `json:"cast"`
	ImageURL        string   `json:"imageUrl"`
	Notes           string   `json:"notes"`
}

type KDramaResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	Rating          *float64  `json:"rating"`
	EpisodesWatched int       `json:"episodesWatched"`
	TotalEpisodes   int       `json:"totalEpisodes"`
	Genres          []string  `json:"genres"`
	Cast            []string  `json:"cast"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type KDramaHandlers struct {
	store KDramaStore
}

func NewKDramaHandlers(store KDramaStore) *KDramaHandlers {
	return &KDramaHandlers{store: store}
}

func (h *KDramaHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("kdramas", "failed to list kdramas", err)
	}

	items := make([]*KDramaResponse, 0, len(list))
	for _, k := range list {
		items = append(items, kdramaResponse(k))
	}
	return writeList(w, r, items)
}

func (h *KDramaHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	k, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("kdrama")
		}
		return storeError("kdramas", "failed to load kdrama", err)
	}

	return writeItem(w, r, http.StatusOK, kdramaResponse(k))
}

func (h *KDramaHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeKDramaRequest(r)
	if err != nil {
		return err
	}

	k := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), k); err != nil {
		return storeError("kdramas", "failed to create kdrama", err)
	}

	return writeItem(w, r, http.StatusCreated, kdramaResponse(k))
}

func (h *KDramaHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeKDramaRequest(r)
	if err != nil {
		return err
	}

	k := req.toModel(identity.UserID)
	k.ID = id
	if err := h.store.Update(r.Context(), k); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("kdrama")
		}
		return storeError("kdramas", "failed to update kdrama", err)
	}

	return writeItem(w, r, http.StatusOK, kdramaResponse(k))
}

func (h *KDramaHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("kdrama")
		}
		return storeError("kdramas", "failed to delete kdrama", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeKDramaRequest(r *http.Request) (*KDramaRequest, error) {
	var req KDramaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	if req.Status == "" {
		req.Status = "planned"
	}
	return &req, nil
}

func (req *KDramaRequest) toModel(userID uuid.UUID) *db.KDrama {
	return &db.KDrama{
		UserID:          userID,
		Title:           req.Title,
		Status:          req.Status,
		Rating:          nullFloat(req.Rating),
		EpisodesWatched: req.EpisodesWatched,
		TotalEpisodes:   req.TotalEpisodes,
		Genres:          req.Genres,
		Cast:            req.Cast,
		ImageURL:        req.ImageURL,
		Notes:           req.Notes,
	}
}

func kdramaResponse(k *db.KDrama) *KDramaResponse {
	return &KDramaResponse{
		ID:              k.ID,
		Title:           k.Title,
		Status:          k.Status,
		Rating:          floatPtr(k.Rating),
		EpisodesWatched: k.EpisodesWatched,
		TotalEpisodes:   k.TotalEpisodes,
		Genres:          strs(k.Genres),
		Cast:            strs(k.Cast),
		ImageURL:        k.ImageURL,
		Notes:           k.Notes,
		CreatedAt:       k.CreatedAt,
		UpdatedAt:       k.UpdatedAt,
	}
}
