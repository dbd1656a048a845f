package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// SQLPreferencesRepository stores user preferences through database/sql (SQLite).
type SQLPreferencesRepository struct {
	db *sql.DB
}

// NewSQLPreferencesRepository creates a new SQLPreferencesRepository.
func NewSQLPreferencesRepository(db *sql.DB) *SQLPreferencesRepository {
	return &SQLPreferencesRepository{db: db}
}

// Create inserts default preferences for a user if none exist.
func (r *SQLPreferencesRepository) Create(ctx context.Context, userID int64) error {
	query := `
        INSERT INTO user_preferences (user_id, dark_mode, bookmarks, achievements, created_at, updated_at)
        VALUES (?, 1, '[]', '[]', ?, ?)
        ON CONFLICT (user_id) DO NOTHING
    `

	now := time.Now().Unix()
	if _, err := r.db.ExecContext(ctx, query, userID, now, now); err != nil {
		return fmt.Errorf("create preferences: %w", err)
	}

	return nil
}

// GetByUserID retrieves preferences by user ID.
// Returns ErrPreferencesNotFound if they don't exist.
func (r *SQLPreferencesRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Preferences, error) {
	return r.get(ctx, r.db, userID)
}

// Modify loads preferences inside a transaction, applies fn and writes them back.
func (r *SQLPreferencesRepository) Modify(
	ctx context.Context, userID int64, fn func(p *entities.Preferences) error,
) (*entities.Preferences, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p, err := r.get(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	bookmarks, err := json.Marshal(p.Bookmarks)
	if err != nil {
		return nil, fmt.Errorf("marshal bookmarks: %w", err)
	}
	achievements, err := json.Marshal(achievementKeys(p))
	if err != nil {
		return nil, fmt.Errorf("marshal achievements: %w", err)
	}

	p.UpdatedAt = time.Now()
	query := `
        UPDATE user_preferences
        SET dark_mode = ?, bookmarks = ?, achievements = ?, updated_at = ?
        WHERE user_id = ?
    `
	if _, err := tx.ExecContext(ctx, query, p.DarkMode, string(bookmarks), string(achievements), p.UpdatedAt.Unix(), userID); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return p, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLPreferencesRepository) get(ctx context.Context, db queryRower, userID int64) (*entities.Preferences, error) {
	query := `
        SELECT user_id, dark_mode, bookmarks, achievements, created_at, updated_at
        FROM user_preferences
        WHERE user_id = ?
    `

	var (
		p                    entities.Preferences
		bookmarks, unlocked  string
		createdAt, updatedAt int64
	)
	err := db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.DarkMode,
		&bookmarks,
		&unlocked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("get preferences by user id: %w", err)
	}

	if err := json.Unmarshal([]byte(bookmarks), &p.Bookmarks); err != nil {
		return nil, fmt.Errorf("unmarshal bookmarks: %w", err)
	}
	var keys []string
	if err := json.Unmarshal([]byte(unlocked), &keys); err != nil {
		return nil, fmt.Errorf("unmarshal achievements: %w", err)
	}
	p.Achievements = make(map[string]bool, len(keys))
	for _, k := range keys {
		p.Achievements[k] = true
	}
	if p.Bookmarks == nil {
		p.Bookmarks = []int{}
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)

	return &p, nil
}
