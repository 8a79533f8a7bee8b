package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          int64
	UserID      uuid.UUID
	Title       string
	Status      string
	Rating      sql.NullFloat64
	Genres      []string
	Cast        []string
	ReleaseYear sql.NullInt32
	ImageURL    string
	Notes       string
	// Optional columns; zero-valued when the deployed schema lacks them.
	Director       sql.NullString
	RuntimeMinutes sql.NullInt32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MovieRepository consults the startup column probe so deployments whose
// movies table predates the director/runtime_minutes columns keep working
// without a per-request error-and-retry cycle.
type MovieRepository struct {
	db   *DB
	cols *ColumnSet
}

func NewMovieRepository(db *DB, cols *ColumnSet) *MovieRepository {
	return &MovieRepository{db: db, cols: cols}
}

func (r *MovieRepository) hasDirector() bool {
	return r.cols.Has("movies", "director")
}

func (r *MovieRepository) hasRuntime() bool {
	return r.cols.Has("movies", "runtime_minutes")
}

func (r *MovieRepository) selectColumns() string {
	cols := []string{
		"id", "user_id", "title", "status", "rating", "genres", "cast_members",
		"release_year", "image_url", "notes", "created_at", "updated_at",
	}
	if r.hasDirector() {
		cols = append(cols, "director")
	}
	if r.hasRuntime() {
		cols = append(cols, "runtime_minutes")
	}
	return strings.Join(cols, ", ")
}

func (r *MovieRepository) scan(row rowScanner) (*Movie, error) {
	m := &Movie{}
	var genres, cast string

	dest := []any{
		&m.ID, &m.UserID, &m.Title, &m.Status, &m.Rating, &genres, &cast,
		&m.ReleaseYear, &m.ImageURL, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	}
	if r.hasDirector() {
		dest = append(dest, &m.Director)
	}
	if r.hasRuntime() {
		dest = append(dest, &m.RuntimeMinutes)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	m.Genres = decodeStrings(genres)
	m.Cast = decodeStrings(cast)
	return m, nil
}

func (r *MovieRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.selectColumns())

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, markDrift(err)
	}
	defer rows.Close()

	list := []*Movie{}
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}

	return list, rows.Err()
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies
		WHERE id = $1 AND user_id = $2
	`, r.selectColumns())

	m, err := r.scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, markDrift(err)
	}

	return m, nil
}

func (r *MovieRepository) Create(ctx context.Context, m *Movie) error {
	cols := []string{
		"user_id", "title", "status", "rating", "genres", "cast_members",
		"release_year", "image_url", "notes",
	}
	args := []any{
		m.UserID, m.Title, m.Status, m.Rating, encodeStrings(m.Genres),
		encodeStrings(m.Cast), m.ReleaseYear, m.ImageURL, m.Notes,
	}
	if r.hasDirector() {
		cols = append(cols, "director")
		args = append(args, m.Director)
	}
	if r.hasRuntime() {
		cols = append(cols, "runtime_minutes")
		args = append(args, m.RuntimeMinutes)
	}

	query := fmt.Sprintf(`
		INSERT INTO movies (%s)
		VALUES (%s)
		RETURNING id, created_at, updated_at
	`, strings.Join(cols, ", "), placeholders(len(cols)))

	return markDrift(r.db.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MovieRepository) Update(ctx context.Context, m *Movie) error {
	sets := []string{
		"title", "status", "rating", "genres", "cast_members",
		"release_year", "image_url", "notes",
	}
	args := []any{
		m.ID, m.UserID, m.Title, m.Status, m.Rating, encodeStrings(m.Genres),
		encodeStrings(m.Cast), m.ReleaseYear, m.ImageURL, m.Notes,
	}
	if r.hasDirector() {
		sets = append(sets, "director")
		args = append(args, m.Director)
	}
	if r.hasRuntime() {
		sets = append(sets, "runtime_minutes")
		args = append(args, m.RuntimeMinutes)
	}

	assignments := make([]string, len(sets))
	for i, col := range sets {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+3)
	}

	query := fmt.Sprintf(`
		UPDATE movies
		SET %s, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`, strings.Join(assignments, ", "))

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return markDrift(err)
}

func (r *MovieRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM movies WHERE id = $1 AND user_id = $2`, id, userID)
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

// placeholders renders "$1, $2, ..., $n".
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
