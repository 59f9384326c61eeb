package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/storage"
)

// CreateTab persists a new tab to the database.
func (s *SQLiteStore) CreateTab(ctx context.Context, tab *models.Tab) error {
	if tab.ID == "" {
		tab.ID = uuid.New().String()
	}
	if tab.CreatedAt == 0 {
		tab.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tabs (id, name, currency, invite_code, created_at) VALUES (?, ?, ?, ?, ?)",
		tab.ID, tab.Name, tab.Currency, tab.InviteCode, tab.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tab: %w", err)
	}

	return nil
}

// GetTab retrieves a tab by ID.
func (s *SQLiteStore) GetTab(ctx context.Context, tabID string) (*models.Tab, error) {
	return s.getTab(ctx, "id = ?", tabID)
}

// GetTabByInviteCode retrieves a tab by its invite code.
func (s *SQLiteStore) GetTabByInviteCode(ctx context.Context, code string) (*models.Tab, error) {
	return s.getTab(ctx, "invite_code = ?", code)
}

func (s *SQLiteStore) getTab(ctx context.Context, where string, arg string) (*models.Tab, error) {
	tab := &models.Tab{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, currency, invite_code, created_at FROM tabs WHERE "+where,
		arg,
	).Scan(&tab.ID, &tab.Name, &tab.Currency, &tab.InviteCode, &tab.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tab %s: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tab: %w", err)
	}
	return tab, nil
}
