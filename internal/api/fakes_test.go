package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
)

// identityMiddleware injects a fixed identity, standing in for the JWT
// cookie middleware.
func identityMiddleware(identity *auth.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

func testIdentity() *auth.Identity {
	return &auth.Identity{
		UserID:   uuid.New(),
		Email:    "mika@example.com",
		Username: "mika",
	}
}

type fakeAnimeStore struct {
	nextID   int64
	items    map[int64]*db.Anime
	failWith error
}

func newFakeAnimeStore() *fakeAnimeStore {
	return &fakeAnimeStore{items: make(map[int64]*db.Anime)}
}

func (s *fakeAnimeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.Anime, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []*db.Anime
	for _, a := range s.items {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeAnimeStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.Anime, error) {
	a, ok := s.items[id]
	if !ok || a.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAnimeStore) Create(_ context.Context, a *db.Anime) error {
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *fakeAnimeStore) Update(_ context.Context, a *db.Anime) error {
	existing, ok := s.items[a.ID]
	if !ok || existing.UserID != a.UserID {
		return db.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *fakeAnimeStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	a, ok := s.items[id]
	if !ok || a.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeGenshinStore struct {
	accounts   map[uuid.UUID]*db.GenshinAccount
	characters map[int64]*db.GenshinCharacter
	owners     map[int64]uuid.UUID
	nextID     int64
}

func newFakeGenshinStore() *fakeGenshinStore {
	return &fakeGenshinStore{
		accounts:   make(map[uuid.UUID]*db.GenshinAccount),
		characters: make(map[int64]*db.GenshinCharacter),
		owners:     make(map[int64]uuid.UUID),
	}
}

func (s *fakeGenshinStore) GetAccount(_ context.Context, userID uuid.UUID) (*db.GenshinAccount, error) {
	a, ok := s.accounts[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeGenshinStore) UpsertAccount(_ context.Context, a *db.GenshinAccount) error {
	if existing, ok := s.accounts[a.UserID]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		a.ID = s.nextID
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = time.Now()
	cp := *a
	s.accounts[a.UserID] = &cp
	return nil
}

func (s *fakeGenshinStore) ListCharacters(_ context.Context, userID uuid.UUID) ([]*db.GenshinCharacter, error) {
	var out []*db.GenshinCharacter
	for id, c := range s.characters {
		if s.owners[id] == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeGenshinStore) GetCharacter(_ context.Context, id int64, userID uuid.UUID) (*db.GenshinCharacter, error) {
	c, ok := s.characters[id]
	if !ok || s.owners[id] != userID {
		return nil, db.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeGenshinStore) CreateCharacter(_ context.Context, userID uuid.UUID, c *db.GenshinCharacter) error {
	account, ok := s.accounts[userID]
	if !ok {
		return db.ErrNotFound
	}
	s.nextID++
	c.ID = s.nextID
	c.AccountID = account.ID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.characters[c.ID] = &cp
	s.owners[c.ID] = userID
	return nil
}

func (s *fakeGenshinStore) UpdateCharacter(_ context.Context, userID uuid.UUID, c *db.GenshinCharacter) error {
	existing, ok := s.characters[c.ID]
	if !ok || s.owners[c.ID] != userID {
		return db.ErrNotFound
	}
	c.AccountID = existing.AccountID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	cp := *c
	s.characters[c.ID] = &cp
	return nil
}

func (s *fakeGenshinStore) DeleteCharacter(_ context.Context, id int64, userID uuid.UUID) error {
	if _, ok := s.characters[id]; !ok || s.owners[id] != userID {
		return db.ErrNotFound
	}
	delete(s.characters, id)
	delete(s.owners, id)
	return nil
}

// newEntityRouter mounts a collection behind a fixed identity, mirroring
// the production route shape.
func newEntityRouter(identity *auth.Identity, pattern string, list, get, create, update, del func(http.ResponseWriter, *http.Request) error) http.Handler {
	r := chi.NewRouter()
	r.Use(identityMiddleware(identity))
	mountCollection(r, apperr.NewErrorHandler(false), pattern, list, get, create, update, del)
	return r
}
