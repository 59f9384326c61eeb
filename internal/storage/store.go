// Package storage provides abstractions for the durable ledger record.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabby/internal/models"
)

// ErrNotFound is returned when a referenced tab, participant, or record does
// not exist. Implementations wrap it with the missing identity.
var ErrNotFound = errors.New("not found")

// Store defines the ledger's persistence contract. Obligations and
// settlements are append-only: there are no update or delete paths. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTab persists a new tab. ID and CreatedAt are populated by the
	// store if unset.
	CreateTab(ctx context.Context, tab *models.Tab) error

	// GetTab retrieves a tab by its ID.
	GetTab(ctx context.Context, tabID string) (*models.Tab, error)

	// GetTabByInviteCode retrieves a tab by its invite code.
	GetTabByInviteCode(ctx context.Context, code string) (*models.Tab, error)

	// CreateParticipant persists a new participant on a tab.
	CreateParticipant(ctx context.Context, p *models.Participant) error

	// GetParticipant retrieves a participant by ID.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// GetParticipantByToken retrieves a participant by access token.
	GetParticipantByToken(ctx context.Context, token string) (*models.Participant, error)

	// ListParticipants returns all participants of a tab in join order.
	ListParticipants(ctx context.Context, tabID string) ([]*models.Participant, error)

	// CreateIOU persists an obligation and its splits as a single atomic
	// unit: all splits are created or none are. A write whose splits do
	// not sum to the IOU total is rejected before commit.
	CreateIOU(ctx context.Context, iou *models.IOU) error

	// ListIOUs returns all obligations of a tab, splits included, oldest
	// first.
	ListIOUs(ctx context.Context, tabID string) ([]*models.IOU, error)

	// CreateSettlement persists a settlement as a single atomic write.
	CreateSettlement(ctx context.Context, s *models.Settlement) error

	// ListSettlements returns all settlements of a tab, oldest first.
	ListSettlements(ctx context.Context, tabID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
