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

type GenshinStore interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (*db.GenshinAccount, error)
	UpsertAccount(ctx context.Context, a *db.GenshinAccount) error
	ListCharacters(ctx context.Context, userID uuid.UUID) ([]*db.GenshinCharacter, error)
	GetCharacter(ctx context.Context, id int64, userID uuid.UUID) (*db.GenshinCharacter, error)
	CreateCharacter(ctx context.Context, userID uuid.UUID, c *db.GenshinCharacter) error
	UpdateCharacter(ctx context.Context, userID uuid.UUID, c *db.GenshinCharacter) error
	DeleteCharacter(ctx context.Context, id int64, userID uuid.UUID) error
}

type GenshinAccountRequest struct {
	GameUID       string `json:"gameUid" validate:"required,max=20"`
	Server        string `json:"server" validate:"required,max=20"`
	AdventureRank int    `json:"adventureRank" validate:"gte=0,lte=60"`
	WorldLevel    int    `json:"worldLevel" validate:"gte=0,lte=9"`
	AbyssFloor    string `json:"abyssFloor" validate:"max=10"`
}

type GenshinAccountResponse struct {
	ID            int64     `json:"id"`
	GameUID       string    `json:"gameUid"`
	Server        string    `json:"server"`
	AdventureRank int       `json:"adventureRank"`
	WorldLevel    int       `json:"worldLevel"`
	AbyssFloor    string    `json:"abyssFloor,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type GenshinCharacterRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Element       string `json:"element" validate:"omitempty,oneof=anemo geo electro dendro hydro pyro cryo"`
	Weapon        string `json:"weapon" validate:"max=20"`
	Rarity        int    `json:"rarity" validate:"omitempty,oneof=4 5"`
	Level         int    `json:"level" validate:"gte=1,lte=90"`
	Constellation int    `json:"constellation" validate:"gte=0,lte=6"`
	Friendship    int    `json:"friendship" validate:"gte=0,lte=10"`
}

type GenshinCharacterResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Element       string    `json:"element,omitempty"`
	Weapon        string    `json:"weapon,omitempty"`
	Rarity        int       `json:"rarity"`
	Level         int       `json:"level"`
	Constellation int       `json:"constellation"`
	Friendship    int       `json:"friendship"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type GenshinHandlers struct {
	store GenshinStore
}

func NewGenshinHandlers(store GenshinStore) *GenshinHandlers {
	return &GenshinHandlers{store: store}
}

// GetAccount returns 404 until the user has saved an account via PutAccount.
func (h *GenshinHandlers) GetAccount(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	a, err := h.store.GetAccount(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("genshin account")
		}
		return storeError("genshin_accounts", "failed to load genshin account", err)
	}

	return writeItem(w, r, http.StatusOK, genshinAccountResponse(a))
}

func (h *GenshinHandlers) PutAccount(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	var req GenshinAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(err)
	}

	a := &db.GenshinAccount{
		UserID:        identity.UserID,
		GameUID:       req.GameUID,
		Server:        req.Server,
		AdventureRank: req.AdventureRank,
		WorldLevel:    req.WorldLevel,
		AbyssFloor:    req.AbyssFloor,
	}
	if err := h.store.UpsertAccount(r.Context(), a); err != nil {
		return storeError("genshin_accounts", "failed to save genshin account", err)
	}

	return writeItem(w, r, http.StatusOK, genshinAccountResponse(a))
}

func (h *GenshinHandlers) ListCharacters(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	list, err := h.store.ListCharacters(r.Context(), identity.UserID)
	if err != nil {
		return storeError("genshin_characters", "failed to list genshin characters", err)
	}

	items := make([]*GenshinCharacterResponse, 0, len(list))
	for _, c := range list {
		items = append(items, genshinCharacterResponse(c))
	}
	return writeList(w, r, items)
}

func (h *GenshinHandlers) GetCharacter(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	c, err := h.store.GetCharacter(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("genshin character")
		}
		return storeError("genshin_characters", "failed to load genshin character", err)
	}

	return writeItem(w, r, http.StatusOK, genshinCharacterResponse(c))
}

// CreateCharacter requires the account to exist; characters hang off it.
func (h *GenshinHandlers) CreateCharacter(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	req, err := decodeGenshinCharacterRequest(r)
	if err != nil {
		return err
	}

	c := req.toModel()
	if err := h.store.CreateCharacter(r.Context(), identity.UserID, c); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("genshin account")
		}
		return storeError("genshin_characters", "failed to create genshin character", err)
	}

	return writeItem(w, r, http.StatusCreated, genshinCharacterResponse(c))
}

func (h *GenshinHandlers) UpdateCharacter(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	req, err := decodeGenshinCharacterRequest(r)
	if err != nil {
		return err
	}

	c := req.toModel()
	c.ID = id
	if err := h.store.UpdateCharacter(r.Context(), identity.UserID, c); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("genshin character")
		}
		return storeError("genshin_characters", "failed to update genshin character", err)
	}

	return writeItem(w, r, http.StatusOK, genshinCharacterResponse(c))
}

func (h *GenshinHandlers) DeleteCharacter(w http.ResponseWriter, r *http.Request) error {
	identity := auth.CurrentUser(r.Context())

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.store.DeleteCharacter(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("genshin character")
		}
		return storeError("genshin_characters", "failed to delete genshin character", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeGenshinCharacterRequest(r *http.Request) (*GenshinCharacterRequest, error) {
	var req GenshinCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	if req.Level == 0 {
		req.Level = 1
	}
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func (req *GenshinCharacterRequest) toModel() *db.GenshinCharacter {
	return &db.GenshinCharacter{
		Name:          req.Name,
		Element:       req.Element,
		Weapon:        req.Weapon,
		Rarity:        req.Rarity,
		Level:         req.Level,
		Constellation: req.Constellation,
		Friendship:    req.Friendship,
	}
}

func genshinAccountResponse(a *db.GenshinAccount) *GenshinAccountResponse {
	return &GenshinAccountResponse{
		ID:            a.ID,
		GameUID:       a.GameUID,
		Server:        a.Server,
		AdventureRank: a.AdventureRank,
		WorldLevel:    a.WorldLevel,
		AbyssFloor:    a.AbyssFloor,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func genshinCharacterResponse(c *db.GenshinCharacter) *GenshinCharacterResponse {
	return &GenshinCharacterResponse{
		ID:            c.ID,
		Name:          c.Name,
		Element:       c.Element,
		Weapon:        c.Weapon,
		Rarity:        c.Rarity,
		Level:         c.Level,
		Constellation: c.Constellation,
		Friendship:    c.Friendship,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
