package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Anime struct {
	ID              int64
	UserID          uuid.UUID
	Title           string
	Status          string
	Rating          sql.NullFloat64
	EpisodesWatched int
	TotalEpisodes   int
	Genres          []string
	ImageURL        string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AnimeRepository struct {
	db *DB
}

func NewAnimeRepository(db *DB) *AnimeRepository {
	return &AnimeRepository{db: db}
}

func (r *AnimeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Anime, error) {
	query := `
		SELECT id, user_id, title, status, rating, episodes_watched, total_episodes,
		       genres, image_url, notes, created_at, updated_at
		FROM anime
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*Anime{}
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}

	return list, rows.Err()
}

func (r *AnimeRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*Anime, error) {
	query := `
		SELECT id, user_id, title, status, rating, episodes_watched, total_episodes,
		       genres, image_url, notes, created_at, updated_at
		FROM anime
		WHERE id = $1 AND user_id = $2
	`

	a, err := scanAnime(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

func (r *AnimeRepository) Create(ctx context.Context, a *Anime) error {
	query := `
		INSERT INTO anime (user_id, title, status, rating, episodes_watched,
		                   total_episodes, genres, image_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		a.UserID, a.Title, a.Status, a.Rating, a.EpisodesWatched,
		a.TotalEpisodes, encodeStrings(a.Genres), a.ImageURL, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AnimeRepository) Update(ctx context.Context, a *Anime) error {
	query := `
		UPDATE anime
		SET title = $3, status = $4, rating = $5, episodes_watched = $6,
		    total_episodes = $7, genres = $8, image_url = $9, notes = $10,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.Title, a.Status, a.Rating, a.EpisodesWatched,
		a.TotalEpisodes, encodeStrings(a.Genres), a.ImageURL, a.Notes,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *AnimeRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM anime WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnime(row rowScanner) (*Anime, error) {
	a := &Anime{}
	var genres string

	err := row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.Status, &a.Rating, &a.EpisodesWatched,
		&a.TotalEpisodes, &genres, &a.ImageURL, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Genres = decodeStrings(genres)
	return a, nil
}
