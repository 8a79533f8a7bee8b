package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type KDrama struct {
	ID              int64
	UserID          uuid.UUID
	Title           string
	Status          string
	Rating          sql.NullFloat64
	EpisodesWatched int
	TotalEpisodes   int
	Genres          []string
	Cast            []string
	ImageURL        string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type KDramaRepository struct {
	db *DB
}

func NewKDramaRepository(db *DB) *KDramaRepository {
	return &KDramaRepository{db: db}
}

func (r *KDramaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*KDrama, error) {
	query := `
		SELECT id, user_id, title, status, rating, episodes_watched, total_episodes,
		       genres, cast_members, image_url, notes, created_at, updated_at
		FROM kdramas
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*KDrama{}
	for rows.Next() {
		k, err := scanKDrama(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, k)
	}

	return list, rows.Err()
}

func (r *KDramaRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*KDrama, error) {
	query := `
		SELECT id, user_id, title, status, rating, episodes_watched, total_episodes,
		       genres, cast_members, image_url, notes, created_at, updated_at
		FROM kdramas
		WHERE id = $1 AND user_id = $2
	`

	k, err := scanKDrama(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return k, nil
}

func (r *KDramaRepository) Create(ctx context.Context, k *KDrama) error {
	query := `
		INSERT INTO kdramas (user_id, title, status, rating, episodes_watched,
		                     total_episodes, genres, cast_members, image_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		k.UserID, k.Title, k.Status, k.Rating, k.EpisodesWatched, k.TotalEpisodes,
		encodeStrings(k.Genres), encodeStrings(k.Cast), k.ImageURL, k.Notes,
	).Scan(&k.ID, &k.CreatedAt, &k.UpdatedAt)
}

func (r *KDramaRepository) Update(ctx context.Context, k *KDrama) error {
	query := `
		UPDATE kdramas
		SET title = $3, status = $4, rating = $5, episodes_watched = $6,
		    total_episodes = $7, genres = $8, cast_members = $9, image_url = $10,
		    notes = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		k.ID, k.UserID, k.Title, k.Status, k.Rating, k.EpisodesWatched,
		k.TotalEpisodes, encodeStrings(k.Genres), encodeStrings(k.Cast),
		k.ImageURL, k.Notes,
	).Scan(&k.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *KDramaRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM kdramas WHERE id = $1 AND user_id = $2`, id, userID)
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

func scanKDrama(row rowScanner) (*KDrama, error) {
	k := &KDrama{}
	var genres, cast string

	err := row.Scan(
		&k.ID, &k.UserID, &k.Title, &k.Status, &k.Rating, &k.EpisodesWatched,
		&k.TotalEpisodes, &genres, &cast, &k.ImageURL, &k.Notes,
		&k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	k.Genres = decodeStrings(genres)
	k.Cast = decodeStrings(cast)
	return k, nil
}
