package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Website struct {
	ID          int64
	UserID      uuid.UUID
	Name        string
	URL         string
	Category    string
	Description string
	Favicon     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WebsiteRepository struct {
	db *DB
}

func NewWebsiteRepository(db *DB) *WebsiteRepository {
	return &WebsiteRepository{db: db}
}

func (r *WebsiteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Website, error) {
	query := `
		SELECT id, user_id, name, url, category, description, favicon, created_at, updated_at
		FROM websites
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*Website{}
	for rows.Next() {
		w := &Website{}
		err := rows.Scan(
			&w.ID, &w.UserID, &w.Name, &w.URL, &w.Category, &w.Description,
			&w.Favicon, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}

	return list, rows.Err()
}

func (r *WebsiteRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*Website, error) {
	query := `
		SELECT id, user_id, name, url, category, description, favicon, created_at, updated_at
		FROM websites
		WHERE id = $1 AND user_id = $2
	`

	w := &Website{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&w.ID, &w.UserID, &w.Name, &w.URL, &w.Category, &w.Description,
		&w.Favicon, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return w, nil
}

func (r *WebsiteRepository) Create(ctx context.Context, w *Website) error {
	query := `
		INSERT INTO websites (user_id, name, url, category, description, favicon)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		w.UserID, w.Name, w.URL, w.Category, w.Description, w.Favicon,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

func (r *WebsiteRepository) Update(ctx context.Context, w *Website) error {
	query := `
		UPDATE websites
		SET name = $3, url = $4, category = $5, description = $6, favicon = $7,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		w.ID, w.UserID, w.Name, w.URL, w.Category, w.Description, w.Favicon,
	).Scan(&w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *WebsiteRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM websites WHERE id = $1 AND user_id = $2`, id, userID)
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
