package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Credential rows store the password as entered. The feature is a
// convenience vault scoped to the owning user; there is no dedicated
// encryption layer. Credential values must never be logged.
type Credential struct {
	ID        int64
	UserID    uuid.UUID
	Site      string
	SiteURL   string
	Login     string
	Password  string
	Category  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CredentialRepository struct {
	db *DB
}

func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Credential, error) {
	query := `
		SELECT id, user_id, site, site_url, login, password, category, notes,
		       created_at, updated_at
		FROM credentials
		WHERE user_id = $1
		ORDER BY site ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*Credential{}
	for rows.Next() {
		c := &Credential{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.Site, &c.SiteURL, &c.Login, &c.Password,
			&c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (r *CredentialRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*Credential, error) {
	query := `
		SELECT id, user_id, site, site_url, login, password, category, notes,
		       created_at, updated_at
		FROM credentials
		WHERE id = $1 AND user_id = $2
	`

	c := &Credential{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Site, &c.SiteURL, &c.Login, &c.Password,
		&c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c *Credential) error {
	query := `
		INSERT INTO credentials (user_id, site, site_url, login, password, category, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		c.UserID, c.Site, c.SiteURL, c.Login, c.Password, c.Category, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CredentialRepository) Update(ctx context.Context, c *Credential) error {
	query := `
		UPDATE credentials
		SET site = $3, site_url = $4, login = $5, password = $6, category = $7,
		    notes = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.Site, c.SiteURL, c.Login, c.Password, c.Category, c.Notes,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *CredentialRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE id = $1 AND user_id = $2`, id, userID)
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
