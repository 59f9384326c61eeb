// Package service exposes the ledger's operations to transport layers and
// test harnesses.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/session"
	"github.com/mmynk/tabby/internal/storage"
)

const defaultCurrency = "USD"

// TabService manages tab and participant lifecycle.
type TabService struct {
	store storage.Store
}

// NewTabService creates a new TabService with the given storage backend.
func NewTabService(store storage.Store) *TabService {
	return &TabService{store: store}
}

// CreateTab creates a tab with a fresh invite code. When creatorName is
// non-empty the creator joins immediately as the first participant and their
// access token is returned on the participant record.
func (s *TabService) CreateTab(ctx context.Context, name, currency, creatorName string) (*models.Tab, *models.Participant, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: tab name is required", ErrValidation)
	}
	if currency == "" {
		currency = defaultCurrency
	}

	code, err := session.NewInviteCode()
	if err != nil {
		return nil, nil, err
	}

	tab := &models.Tab{Name: name, Currency: currency, InviteCode: code}
	if err := s.store.CreateTab(ctx, tab); err != nil {
		return nil, nil, fmt.Errorf("failed to create tab: %w", err)
	}
	slog.Info("Tab created", "tab_id", tab.ID, "invite_code", tab.InviteCode)

	var creator *models.Participant
	if creatorName != "" {
		creator, err = s.addParticipant(ctx, tab, creatorName)
		if err != nil {
			return nil, nil, err
		}
	}

	return tab, creator, nil
}

// JoinTab adds a participant to the tab identified by an invite code and
// issues their access token.
func (s *TabService) JoinTab(ctx context.Context, inviteCode, name string) (*models.Tab, *models.Participant, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: participant name is required", ErrValidation)
	}

	tab, err := s.store.GetTabByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.addParticipant(ctx, tab, name)
	if err != nil {
		return nil, nil, err
	}
	return tab, p, nil
}

// GetTabByCode fetches a tab by invite code.
func (s *TabService) GetTabByCode(ctx context.Context, inviteCode string) (*models.Tab, error) {
	return s.store.GetTabByInviteCode(ctx, inviteCode)
}

// ListParticipants returns all participants of a tab in join order.
func (s *TabService) ListParticipants(ctx context.Context, tabID string) ([]*models.Participant, error) {
	return s.store.ListParticipants(ctx, tabID)
}

func (s *TabService) addParticipant(ctx context.Context, tab *models.Tab, name string) (*models.Participant, error) {
	token, err := session.NewAccessToken()
	if err != nil {
		return nil, err
	}

	p := &models.Participant{TabID: tab.ID, Name: name, AccessToken: token}
	if err := s.store.CreateParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	slog.Info("Participant joined", "tab_id", tab.ID, "participant_id", p.ID, "name", name)
	return p, nil
}
