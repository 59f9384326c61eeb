package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tabby/internal/ledger"
	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
	"github.com/mmynk/tabby/internal/storage"
)

// LedgerService implements the reconciliation operations: recording
// obligations and settlements, deriving net balances, and planning transfers.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// GetNetBalances derives every tab participant's net position from the full
// obligation and settlement history. The result is ordered by join order,
// zeros included. Recomputes from the store on every call; there is no
// cached state to race on.
func (s *LedgerService) GetNetBalances(ctx context.Context, tabID string) ([]ledger.Balance, error) {
	if _, err := s.store.GetTab(ctx, tabID); err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipants(ctx, tabID)
	if err != nil {
		return nil, err
	}
	ious, err := s.store.ListIOUs(ctx, tabID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlements(ctx, tabID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.NetBalances(participants, ious, settlements)
	if err != nil {
		slog.Error("Balance aggregation failed", "tab_id", tabID, "error", err)
		return nil, err
	}
	return balances, nil
}

// PlanSettlement computes the transfer edges that zero out every balance on
// the tab. Zero-balance participants are excluded; edge count is bounded by
// participant count minus one.
func (s *LedgerService) PlanSettlement(ctx context.Context, tabID string) ([]ledger.Transfer, error) {
	balances, err := s.GetNetBalances(ctx, tabID)
	if err != nil {
		return nil, err
	}

	transfers, err := ledger.Plan(balances)
	if err != nil {
		slog.Error("Settlement planning aborted", "tab_id", tabID, "error", err)
		return nil, err
	}
	return transfers, nil
}

// RecordObligation validates and persists an IOU with its splits as one
// atomic unit. For even splits the total is divided across all current tab
// participants, payer included, with remainder cents going to the earliest
// joiners. For custom splits the caller-supplied amounts must reference tab
// participants and sum exactly to the total.
func (s *LedgerService) RecordObligation(ctx context.Context, tabID, payerID string, total money.Amount, description string, splitType models.SplitType, customSplits map[string]money.Amount) (*models.IOU, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrValidation, total)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	participants, err := s.participantsOf(ctx, tabID)
	if err != nil {
		return nil, err
	}
	if _, ok := participants.byID[payerID]; !ok {
		return nil, fmt.Errorf("payer %s: %w", payerID, storage.ErrNotFound)
	}

	iou := &models.IOU{
		TabID:       tabID,
		PayerID:     payerID,
		Amount:      total,
		Description: description,
		SplitType:   splitType,
	}

	switch splitType {
	case models.SplitEven:
		shares, err := ledger.EvenSplit(total, len(participants.ordered))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		for i, p := range participants.ordered {
			iou.Splits = append(iou.Splits, models.Split{ParticipantID: p.ID, Amount: shares[i]})
		}

	case models.SplitCustom:
		if len(customSplits) == 0 {
			return nil, fmt.Errorf("%w: custom split requires split amounts", ErrValidation)
		}
		// Walk participants in join order so split rows are deterministic.
		amounts := make([]money.Amount, 0, len(customSplits))
		matched := 0
		for _, p := range participants.ordered {
			amount, ok := customSplits[p.ID]
			if !ok {
				continue
			}
			matched++
			amounts = append(amounts, amount)
			iou.Splits = append(iou.Splits, models.Split{ParticipantID: p.ID, Amount: amount})
		}
		if matched != len(customSplits) {
			return nil, fmt.Errorf("%w: custom split references a participant not on this tab", ErrValidation)
		}
		if err := ledger.ValidateCustomSplits(total, amounts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}

	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrValidation, splitType)
	}

	if err := s.store.CreateIOU(ctx, iou); err != nil {
		return nil, fmt.Errorf("failed to record obligation: %w", err)
	}
	slog.Info("Obligation recorded",
		"tab_id", tabID,
		"iou_id", iou.ID,
		"payer_id", payerID,
		"amount", total.String(),
		"split_type", string(splitType),
	)
	return iou, nil
}

// RecordSettlement validates and persists a payment from one participant to
// another on the same tab.
func (s *LedgerService) RecordSettlement(ctx context.Context, tabID, fromID, toID string, amount money.Amount) (*models.Settlement, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrValidation, amount)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrValidation)
	}

	participants, err := s.participantsOf(ctx, tabID)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{fromID, toID} {
		if _, ok := participants.byID[id]; !ok {
			return nil, fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
		}
	}

	settlement := &models.Settlement{TabID: tabID, FromID: fromID, ToID: toID, Amount: amount}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}
	slog.Info("Settlement recorded",
		"tab_id", tabID,
		"settlement_id", settlement.ID,
		"from_id", fromID,
		"to_id", toID,
		"amount", amount.String(),
	)
	return settlement, nil
}

type tabParticipants struct {
	ordered []*models.Participant
	byID    map[string]*models.Participant
}

func (s *LedgerService) participantsOf(ctx context.Context, tabID string) (*tabParticipants, error) {
	if _, err := s.store.GetTab(ctx, tabID); err != nil {
		return nil, err
	}
	ordered, err := s.store.ListParticipants(ctx, tabID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Participant, len(ordered))
	for _, p := range ordered {
		byID[p.ID] = p
	}
	return &tabParticipants{ordered: ordered, byID: byID}, nil
}
