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

// CreateParticipant persists a new participant to the database.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (id, tab_id, name, access_token, created_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.TabID, p.Name, p.AccessToken, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	return s.getParticipant(ctx, "id = ?", participantID)
}

// GetParticipantByToken retrieves a participant by access token.
func (s *SQLiteStore) GetParticipantByToken(ctx context.Context, token string) (*models.Participant, error) {
	return s.getParticipant(ctx, "access_token = ?", token)
}

func (s *SQLiteStore) getParticipant(ctx context.Context, where string, arg string) (*models.Participant, error) {
	p := &models.Participant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, tab_id, name, access_token, created_at FROM participants WHERE "+where,
		arg,
	).Scan(&p.ID, &p.TabID, &p.Name, &p.AccessToken, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ListParticipants retrieves all participants of a tab in join order.
// rowid breaks ties between same-second joins, so the order is insertion
// order and balance output and settlement plans stay reproducible.
func (s *SQLiteStore) ListParticipants(ctx context.Context, tabID string) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tab_id, name, access_token, created_at FROM participants WHERE tab_id = ? ORDER BY created_at, rowid",
		tabID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.TabID, &p.Name, &p.AccessToken, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
