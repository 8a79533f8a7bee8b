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

type GameStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*db.Game, error)
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*db.Game, error)
	Create(ctx context.Context, g *db.Game) error
	Update(ctx context.Context, g *db.Game) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type GameRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Status    string   `json:"status" validate:"omitempty,oneof=playing completed on_hold dropped planned"`
	Rating    *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Platforms []string `json:"platforms"`
	Genres    []string `json:"genres"`
	ImageURL  string   `json:"imageUrl"`
	Notes     string   `json:"notes"`

	// Only persisted when the deployed schema carries the columns.
	HoursPlayed *float64 `json:"hoursPlayed" validate:"omitempty,gte=0"`
	Completion  *int     `json:"completion" validate:"omitempty,gte=0,lte=100"`
}

type GameResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Rating      *float64  `json:"rating"`
	Platforms   []string  `json:"platforms"`
	Genres      []string  `json:"genres"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	HoursPlayed *float64  `json:"hoursPlayed,omitempty"`
	Completion  *int      `json:"completion,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type GameHandlers struct {
	store GameStore
}

func NewGameHandlers(store GameStore) *GameHandlers {
	return &GameHandlers{store: store}
}

func (h *GameHandlers) List(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		return storeError("games", "failed to list games", err)
	}

	items := make([]*GameResponse, 0, len(list))
	for _, g := range list {
		items = append(items, gameResponse(g))
	}
	return writeList(w, r, items)
}

func (h *GameHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	g, err := h.store.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("game")
		}
		return storeError("games", "failed to load game", err)
	}

	return writeItem(w, r, http.StatusOK, gameResponse(g))
}

func (h *GameHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeGameRequest(r)
	if err != nil {
		return err
	}

	g := req.toModel(identity.UserID)
	if err := h.store.Create(r.Context(), g); err != nil {
		return storeError("games", "failed to create game", err)
	}

	return writeItem(w, r, http.StatusCreated, gameResponse(g))
}

func (h *GameHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeGameRequest(r)
	if err != nil {
		return err
	}

	g := req.toModel(identity.UserID)
	g.ID = id
	if err := h.store.Update(r.Context(), g); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("game")
		}
		return storeError("games", "failed to update game", err)
	}

	return writeItem(w, r, http.StatusOK, gameResponse(g))
}

func (h *GameHandlers) Delete(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("game")
		}
		return storeError("games", "failed to delete game", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeGameRequest(r *http.Request) (*GameRequest, error) {
	var req GameRequest
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

func (req *GameRequest) toModel(userID uuid.UUID) *db.Game {
	return &db.Game{
		UserID:      userID,
		Title:       req.Title,
		Status:      req.Status,
		Rating:      nullFloat(req.Rating),
		Platforms:   req.Platforms,
		Genres:      req.Genres,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
		HoursPlayed: nullFloat(req.HoursPlayed),
		Completion:  nullInt32(req.Completion),
	}
}

func gameResponse(g *db.Game) *GameResponse {
	return &GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Status:      g.Status,
		Rating:      floatPtr(g.Rating),
		Platforms:   strs(g.Platforms),
		Genres:      strs(g.Genres),
		ImageURL:    g.ImageURL,
		Notes:       g.Notes,
		HoursPlayed: floatPtr(g.HoursPlayed),
		Completion:  intPtr(g.Completion),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
