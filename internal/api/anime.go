package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
)

type AnimeStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.Anime, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.Anime, error)
	Create(ctx context.Context, a *db.Anime) error
	Update(ctx context.Context, a *db.Anime) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type AnimeRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Status          string   `json:"status" validate:"omitempty,oneof=watching completed on_hold dropped planned"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	EpisodesWatched int      `json:"episodesWatched" validate:"gte=0"`
	TotalEpisodes   int      `json:"totalEpisodes" validate:"gte=0"`
	Genres          []string `json:"genres"`
	ImageURL        string   `json:"imageUrl"`
	Notes           string   `json:"notes"`
}

type AnimeResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	Rating          *float64  `json:"rating"`
	EpisodesWatched int       `json:"episodesWatched"`
	TotalEpisodes   int       `json:"totalEpisodes"`
	Genres          []string  `json:"genres"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AnimeHandlers struct {
	store AnimeStore
}

func NewAnimeHandlers(store AnimeStore) *AnimeHandlers {
	return &AnimeHandlers{store: store}
}

func (h *AnimeHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("anime", "failed to list anime", err)
	}

	items := make([]*AnimeResponse, 0, len(list))
	for _, a := range list {
		items = append(items, animeResponse(a))
	}
	return writeList(w, r, items)
}

func (h *AnimeHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	a, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("anime")
		}
		return storeError("anime", "failed to load anime", err)
	}

	return writeItem(w, r, http.StatusOK, animeResponse(a))
}

func (h *AnimeHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeAnimeRequest(r)
	if err != nil {
		return err
	}

	a := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), a); err != nil {
		return storeError("anime", "failed to create anime", err)
	}

	return writeItem(w, r, http.StatusCreated, animeResponse(a))
}

func (h *AnimeHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeAnimeRequest(r)
	if err != nil {
		return err
	}

	a := req.toModel(identity.UserID)
	a.ID = id
	if err := h.store.Update(r.Context(), a); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("anime")
		}
		return storeError("anime", "failed to update anime", err)
	}

	return writeItem(w, r, http.StatusOK, animeResponse(a))
}

func (h *AnimeHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("anime")
		}
		return storeError("anime", "failed to delete anime", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeAnimeRequest(r *http.Request) (*AnimeRequest, error) {
	var req AnimeRequest
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

func (req *AnimeRequest) toModel(userID uuid.UUID) *db.Anime {
	return &db.Anime{
		UserID:          userID,
		Title:           req.Title,
		Status:          req.Status,
		Rating:          nullFloat(req.Rating),
		EpisodesWatched: req.EpisodesWatched,
		TotalEpisodes:   req.TotalEpisodes,
		Genres:          req.Genres,
		ImageURL:        req.ImageURL,
		Notes:           req.Notes,
	}
}

func animeResponse(a *db.Anime) *AnimeResponse {
	return &AnimeResponse{
		ID:              a.ID,
		Title:           a.Title,
		Status:          a.Status,
		Rating:          floatPtr(a.Rating),
		EpisodesWatched: a.EpisodesWatched,
		TotalEpisodes:   a.TotalEpisodes,
		Genres:          strs(a.Genres),
		ImageURL:        a.ImageURL,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
