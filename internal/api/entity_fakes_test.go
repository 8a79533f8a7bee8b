package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
)

type fakeMovieStore struct {
	nextID int64
	items  map[int64]*db.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{items: make(map[int64]*db.Movie)}
}

func (s *fakeMovieStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.Movie, error) {
	var out []*db.Movie
	for _, m := range s.items {
		if m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeMovieStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.Movie, error) {
	m, ok := s.items[id]
	if !ok || m.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMovieStore) Create(_ context.Context, m *db.Movie) error {
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	s.items[m.ID] = &cp
	return nil
}

func (s *fakeMovieStore) Update(_ context.Context, m *db.Movie) error {
	existing, ok := s.items[m.ID]
	if !ok || existing.UserID != m.UserID {
		return db.ErrNotFound
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now()
	cp := *m
	s.items[m.ID] = &cp
	return nil
}

func (s *fakeMovieStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	m, ok := s.items[id]
	if !ok || m.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeCredentialStore struct {
	nextID int64
	items  map[int64]*db.Credential
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{items: make(map[int64]*db.Credential)}
}

func (s *fakeCredentialStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.Credential, error) {
	var out []*db.Credential
	for _, c := range s.items {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeCredentialStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.Credential, error) {
	c, ok := s.items[id]
	if !ok || c.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCredentialStore) Create(_ context.Context, c *db.Credential) error {
	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *fakeCredentialStore) Update(_ context.Context, c *db.Credential) error {
	existing, ok := s.items[c.ID]
	if !ok || existing.UserID != c.UserID {
		return db.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *fakeCredentialStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	c, ok := s.items[id]
	if !ok || c.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeWebsiteStore struct {
	nextID int64
	items  map[int64]*db.Website
}

func newFakeWebsiteStore() *fakeWebsiteStore {
	return &fakeWebsiteStore{items: make(map[int64]*db.Website)}
}

func (s *fakeWebsiteStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.Website, error) {
	var out []*db.Website
	for _, v := range s.items {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeWebsiteStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.Website, error) {
	v, ok := s.items[id]
	if !ok || v.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *fakeWebsiteStore) Create(_ context.Context, v *db.Website) error {
	s.nextID++
	v.ID = s.nextID
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	s.items[v.ID] = &cp
	return nil
}

func (s *fakeWebsiteStore) Update(_ context.Context, v *db.Website) error {
	existing, ok := s.items[v.ID]
	if !ok || existing.UserID != v.UserID {
		return db.ErrNotFound
	}
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = time.Now()
	cp := *v
	s.items[v.ID] = &cp
	return nil
}

func (s *fakeWebsiteStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	v, ok := s.items[id]
	if !ok || v.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeGameStore struct {
	nextID int64
	items  map[int64]*db.Game
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{items: make(map[int64]*db.Game)}
}

func (s *fakeGameStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.Game, error) {
	var out []*db.Game
	for _, g := range s.items {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeGameStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.Game, error) {
	g, ok := s.items[id]
	if !ok || g.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *fakeGameStore) Create(_ context.Context, g *db.Game) error {
	s.nextID++
	g.ID = s.nextID
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	s.items[g.ID] = &cp
	return nil
}

func (s *fakeGameStore) Update(_ context.Context, g *db.Game) error {
	existing, ok := s.items[g.ID]
	if !ok || existing.UserID != g.UserID {
		return db.ErrNotFound
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now()
	cp := *g
	s.items[g.ID] = &cp
	return nil
}

func (s *fakeGameStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	g, ok := s.items[id]
	if !ok || g.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeKDramaStore struct {
	nextID int64
	items  map[int64]*db.KDrama
}

func newFakeKDramaStore() *fakeKDramaStore {
	return &fakeKDramaStore{items: make(map[int64]*db.KDrama)}
}

func (s *fakeKDramaStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*db.KDrama, error) {
	var out []*db.KDrama
	for _, k := range s.items {
		if k.UserID == userID {
			cp := *k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeKDramaStore) GetByID(_ context.Context, id int64, userID uuid.UUID) (*db.KDrama, error) {
	k, ok := s.items[id]
	if !ok || k.UserID != userID {
		return nil, db.ErrNotFound
	}
	cp := *k
	return &cp, nil
}

func (s *fakeKDramaStore) Create(_ context.Context, k *db.KDrama) error {
	s.nextID++
	k.ID = s.nextID
	k.CreatedAt = time.Now()
	k.UpdatedAt = k.CreatedAt
	cp := *k
	s.items[k.ID] = &cp
	return nil
}

func (s *fakeKDramaStore) Update(_ context.Context, k *db.KDrama) error {
	existing, ok := s.items[k.ID]
	if !ok || existing.UserID != k.UserID {
		return db.ErrNotFound
	}
	k.CreatedAt = existing.CreatedAt
	k.UpdatedAt = time.Now()
	cp := *k
	s.items[k.ID] = &cp
	return nil
}

func (s *fakeKDramaStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	k, ok := s.items[id]
	if !ok || k.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
