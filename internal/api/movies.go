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

type MovieStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.Movie, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.Movie, error)
	Create(ctx context.Context, m *db.Movie) error
	Update(ctx context.Context, m *db.Movie) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Status      string   `json:"status" validate:"omitempty,oneof=watching completed on_hold dropped planned"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Genres      []string `json:"genres"`
	Cast        []string `json:"cast"`
	ReleaseYear *int     `json:"releaseYear" validate:"omitempty,gte=1880,lte=2100"`
	ImageURL    string   `json:"imageUrl"`
	Notes       string   `json:"notes"`
	// Stored only when the deployed schema has the columns.
	Director       *string `json:"director" validate:"omitempty,max=255"`
	RuntimeMinutes *int    `json:"runtimeMinutes" validate:"omitempty,gte=1,lte=1000"`
}

type MovieResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Rating         *float64  `json:"rating"`
	Genres         []string  `json:"genres"`
	Cast           []string  `json:"cast"`
	ReleaseYear    *int      `json:"releaseYear"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Director       *string   `json:"director,omitempty"`
	RuntimeMinutes *int      `json:"runtimeMinutes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type MovieHandlers struct {
	store MovieStore
}

func NewMovieHandlers(store MovieStore) *MovieHandlers {
	return &MovieHandlers{store: store}
}

func (h *MovieHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("movies", "failed to list movies", err)
	}

	items := make([]*MovieResponse, 0, len(list))
	for _, m := range list {
		items = append(items, movieResponse(m))
	}
	return writeList(w, r, items)
}

func (h *MovieHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	m, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("movie")
		}
		return storeError("movies", "failed to load movie", err)
	}

	return writeItem(w, r, http.StatusOK, movieResponse(m))
}

func (h *MovieHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeMovieRequest(r)
	if err != nil {
		return err
	}

	m := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), m); err != nil {
		return storeError("movies", "failed to create movie", err)
	}

	return writeItem(w, r, http.StatusCreated, movieResponse(m))
}

func (h *MovieHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeMovieRequest(r)
	if err != nil {
		return err
	}

	m := req.toModel(identity.UserID)
	m.ID = id
	if err := h.store.Update(r.Context(), m); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("movie")
		}
		return storeError("movies", "failed to update movie", err)
	}

	return writeItem(w, r, http.StatusOK, movieResponse(m))
}

func (h *MovieHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("movie")
		}
		return storeError("movies", "failed to delete movie", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeMovieRequest(r *http.Request) (*MovieRequest, error) {
	var req MovieRequest
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

func (req *MovieRequest) toModel(userID uuid.UUID) *db.Movie {
	return &db.Movie{
		UserID:         userID,
		Title:          req.Title,
		Status:         req.Status,
		Rating:         nullFloat(req.Rating),
		Genres:         req.Genres,
		Cast:           req.Cast,
		ReleaseYear:    nullInt32(req.ReleaseYear),
		ImageURL:       req.ImageURL,
		Notes:          req.Notes,
		Director:       nullString(req.Director),
		RuntimeMinutes: nullInt32(req.RuntimeMinutes),
	}
}

func movieResponse(m *db.Movie) *MovieResponse {
	return &MovieResponse{
		ID:             m.ID,
		Title:          m.Title,
		Status:         m.Status,
		Rating:         floatPtr(m.Rating),
		Genres:         strs(m.Genres),
		Cast:           strs(m.Cast),
		ReleaseYear:    intPtr(m.ReleaseYear),
		ImageURL:       m.ImageURL,
		Notes:          m.Notes,
		Director:       stringPtr(m.Director),
		RuntimeMinutes: intPtr(m.RuntimeMinutes),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func nullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
