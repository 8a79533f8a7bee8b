package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// GenshinAccount is one-per-user; characters hang off the account rather
// than the user directly.
type GenshinAccount struct {
	ID            int64
	UserID        uuid.UUID
	GameUID       string
	Server        string
	AdventureRank int
	WorldLevel    int
	AbyssFloor    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type GenshinCharacter struct {
	ID            int64
	AccountID     int64
	Name          string
	Element       string
	Weapon        string
	Rarity        int
	Level         int
	Constellation int
	Friendship    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type GenshinRepository struct {
	db *DB
}

func NewGenshinRepository(db *DB) *GenshinRepository {
	return &GenshinRepository{db: db}
}

func (r *GenshinRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*GenshinAccount, error) {
	query := `
		SELECT id, user_id, game_uid, server, adventure_rank, world_level,
		       abyss_floor, created_at, updated_at
		FROM genshin_accounts
		WHERE user_id = $1
	`

	a := &GenshinAccount{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.GameUID, &a.Server, &a.AdventureRank,
		&a.WorldLevel, &a.AbyssFloor, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

// UpsertAccount creates or replaces the single account row for the user.
func (r *GenshinRepository) UpsertAccount(ctx context.Context, a *GenshinAccount) error {
	query := `
		INSERT INTO genshin_accounts (user_id, game_uid, server, adventure_rank,
		                              world_level, abyss_floor)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET game_uid = EXCLUDED.game_uid, server = EXCLUDED.server,
		    adventure_rank = EXCLUDED.adventure_rank,
		    world_level = EXCLUDED.world_level,
		    abyss_floor = EXCLUDED.abyss_floor,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		a.UserID, a.GameUID, a.Server, a.AdventureRank, a.WorldLevel, a.AbyssFloor,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// ListCharacters returns the characters of the user's account. Queries join
// through genshin_accounts so rows are always scoped to the owner.
func (r *GenshinRepository) ListCharacters(ctx context.Context, userID uuid.UUID) ([]*GenshinCharacter, error) {
	query := `
		SELECT c.id, c.account_id, c.name, c.element, c.weapon, c.rarity,
		       c.level, c.constellation, c.friendship, c.created_at, c.updated_at
		FROM genshin_characters c
		JOIN genshin_accounts a ON a.id = c.account_id
		WHERE a.user_id = $1
		ORDER BY c.level DESC, c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*GenshinCharacter{}
	for rows.Next() {
		c, err := scanGenshinCharacter(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (r *GenshinRepository) GetCharacter(ctx context.Context, id int64, userID uuid.UUID) (*GenshinCharacter, error) {
	query := `
		SELECT c.id, c.account_id, c.name, c.element, c.weapon, c.rarity,
		       c.level, c.constellation, c.friendship, c.created_at, c.updated_at
		FROM genshin_characters c
		JOIN genshin_accounts a ON a.id = c.account_id
		WHERE c.id = $1 AND a.user_id = $2
	`

	c, err := scanGenshinCharacter(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// CreateCharacter inserts a character under the user's account. Returns
// ErrNotFound when the user has no account yet.
func (r *GenshinRepository) CreateCharacter(ctx context.Context, userID uuid.UUID, c *GenshinCharacter) error {
	account, err := r.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	c.AccountID = account.ID

	query := `
		INSERT INTO genshin_characters (account_id, name, element, weapon, rarity,
		                                level, constellation, friendship)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		c.AccountID, c.Name, c.Element, c.Weapon, c.Rarity, c.Level,
		c.Constellation, c.Friendship,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *GenshinRepository) UpdateCharacter(ctx context.Context, userID uuid.UUID, c *GenshinCharacter) error {
	query := `
		UPDATE genshin_characters c
		SET name = $3, element = $4, weapon = $5, rarity = $6, level = $7,
		    constellation = $8, friendship = $9, updated_at = NOW()
		FROM genshin_accounts a
		WHERE c.id = $1 AND c.account_id = a.id AND a.user_id = $2
		RETURNING c.account_id, c.updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, userID, c.Name, c.Element, c.Weapon, c.Rarity, c.Level,
		c.Constellation, c.Friendship,
	).Scan(&c.AccountID, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *GenshinRepository) DeleteCharacter(ctx context.Context, id int64, userID uuid.UUID) error {
	query := `
		DELETE FROM genshin_characters c
		USING genshin_accounts a
		WHERE c.id = $1 AND c.account_id = a.id AND a.user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID)
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

func scanGenshinCharacter(row rowScanner) (*GenshinCharacter, error) {
	c := &GenshinCharacter{}
	err := row.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Element, &c.Weapon, &c.Rarity,
		&c.Level, &c.Constellation, &c.Friendship, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
