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

type Game struct {
	ID        int64
	UserID    uuid.UUID
	Title     string
	Status    string
	Rating    sql.NullFloat64
	Platforms []string
	Genres    []string
	ImageURL  string
	Notes     string
	// Optional columns; zero-valued when the deployed schema lacks them.
	HoursPlayed sql.NullFloat64
	Completion  sql.NullInt32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GameRepository consults the startup column probe for the optional
// hours_played/completion columns, same scheme as MovieRepository.
type GameRepository struct {
	db   *DB
	cols *ColumnSet
}

func NewGameRepository(db *DB, cols *ColumnSet) *GameRepository {
	return &GameRepository{db: db, cols: cols}
}

func (r *GameRepository) hasHours() bool {
	return r.cols.Has("games", "hours_played")
}

func (r *GameRepository) hasCompletion() bool {
	return r.cols.Has("games", "completion")
}

func (r *GameRepository) selectColumns() string {
	cols := []string{
		"id", "user_id", "title", "status", "rating", "platforms", "genres",
		"image_url", "notes", "created_at", "updated_at",
	}
	if r.hasHours() {
		cols = append(cols, "hours_played")
	}
	if r.hasCompletion() {
		cols = append(cols, "completion")
	}
	return strings.Join(cols, ", ")
}

func (r *GameRepository) scan(row rowScanner) (*Game, error) {
	g := &Game{}
	var platforms, genres string

	dest := []any{
		&g.ID, &g.UserID, &g.Title, &g.Status, &g.Rating, &platforms, &genres,
		&g.ImageURL, &g.Notes, &g.CreatedAt, &g.UpdatedAt,
	}
	if r.hasHours() {
		dest = append(dest, &g.HoursPlayed)
	}
	if r.hasCompletion() {
		dest = append(dest, &g.Completion)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	g.Platforms = decodeStrings(platforms)
	g.Genres = decodeStrings(genres)
	return g, nil
}

func (r *GameRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Game, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM games
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.selectColumns())

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, markDrift(err)
	}
	defer rows.Close()

	list := []*Game{}
	for rows.Next() {
		g, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, g)
	}

	return list, rows.Err()
}

func (r *GameRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*Game, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM games
		WHERE id = $1 AND user_id = $2
	`, r.selectColumns())

	g, err := r.scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, markDrift(err)
	}

	return g, nil
}

func (r *GameRepository) Create(ctx context.Context, g *Game) error {
	cols := []string{
		"user_id", "title", "status", "rating", "platforms", "genres",
		"image_url", "notes",
	}
	args := []any{
		g.UserID, g.Title, g.Status, g.Rating, encodeStrings(g.Platforms),
		encodeStrings(g.Genres), g.ImageURL, g.Notes,
	}
	if r.hasHours() {
		cols = append(cols, "hours_played")
		args = append(args, g.HoursPlayed)
	}
	if r.hasCompletion() {
		cols = append(cols, "completion")
		args = append(args, g.Completion)
	}

	query := fmt.Sprintf(`
		INSERT INTO games (%s)
		VALUES (%s)
		RETURNING id, created_at, updated_at
	`, strings.Join(cols, ", "), placeholders(len(cols)))

	return markDrift(r.db.QueryRowContext(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt))
}

func (r *GameRepository) Update(ctx context.Context, g *Game) error {
	sets := []string{
		"title", "status", "rating", "platforms", "genres", "image_url", "notes",
	}
	args := []any{
		g.ID, g.UserID, g.Title, g.Status, g.Rating, encodeStrings(g.Platforms),
		encodeStrings(g.Genres), g.ImageURL, g.Notes,
	}
	if r.hasHours() {
		sets = append(sets, "hours_played")
		args = append(args, g.HoursPlayed)
	}
	if r.hasCompletion() {
		sets = append(sets, "completion")
		args = append(args, g.Completion)
	}

	assignments := make([]string, len(sets))
	for i, col := range sets {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+3)
	}

	query := fmt.Sprintf(`
		UPDATE games
		SET %s, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`, strings.Join(assignments, ", "))

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return markDrift(err)
}

func (r *GameRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM games WHERE id = $1 AND user_id = $2`, id, userID)
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
