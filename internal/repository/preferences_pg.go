package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/infra/postgres"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// PreferencesRepository stores user preferences in PostgreSQL.
type PreferencesRepository struct {
	db postgres.DBTX
	tr txRunner
}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(db postgres.DBTX, tr txRunner) *PreferencesRepository {
	return &PreferencesRepository{db: db, tr: tr}
}

// Create inserts default preferences for a user if none exist.
func (r *PreferencesRepository) Create(ctx context.Context, userID int64) error {
	query := `
        INSERT INTO user_preferences (user_id, dark_mode, bookmarks, achievements, created_at, updated_at)
        VALUES ($1, TRUE, '{}', '{}', NOW(), NOW())
        ON CONFLICT (user_id) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("create preferences: %w", err)
	}

	return nil
}

// GetByUserID retrieves preferences by user ID.
// Returns ErrPreferencesNotFound if they don't exist.
func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Preferences, error) {
	return r.get(ctx, r.db, userID, false)
}

// Modify loads preferences under a row lock, applies fn and writes them back.
func (r *PreferencesRepository) Modify(
	ctx context.Context, userID int64, fn func(p *entities.Preferences) error,
) (*entities.Preferences, error) {
	var out *entities.Preferences

	err := r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		p, err := r.get(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		if err := fn(p); err != nil {
			return err
		}

		query := `
            UPDATE user_preferences
            SET dark_mode = $2, bookmarks = $3, achievements = $4, updated_at = NOW()
            WHERE user_id = $1
            RETURNING updated_at
        `

		bookmarks := make([]int32, 0, len(p.Bookmarks))
		for _, b := range p.Bookmarks {
			bookmarks = append(bookmarks, int32(b))
		}

		if err := tx.QueryRow(ctx, query, userID, p.DarkMode, bookmarks, achievementKeys(p)).Scan(&p.UpdatedAt); err != nil {
			return fmt.Errorf("update preferences: %w", err)
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PreferencesRepository) get(ctx context.Context, db postgres.DBTX, userID int64, lock bool) (*entities.Preferences, error) {
	query := `
        SELECT user_id, dark_mode, bookmarks, achievements, created_at, updated_at
        FROM user_preferences
        WHERE user_id = $1
    `
	if lock {
		query += " FOR UPDATE"
	}

	var (
		p            entities.Preferences
		bookmarks    []int32
		achievements []string
	)
	err := db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.DarkMode,
		&bookmarks,
		&achievements,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("get preferences by user id: %w", err)
	}

	p.Bookmarks = make([]int, 0, len(bookmarks))
	for _, b := range bookmarks {
		p.Bookmarks = append(p.Bookmarks, int(b))
	}
	p.Achievements = make(map[string]bool, len(achievements))
	for _, a := range achievements {
		p.Achievements[a] = true
	}

	return &p, nil
}

// achievementKeys returns the unlocked keys in a stable order.
func achievementKeys(p *entities.Preferences) []string {
	keys := make([]string, 0, len(p.Achievements))
	for k, ok := range p.Achievements {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
