package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
)

// CreateIOU persists an obligation and its splits in one transaction.
// The split-sum invariant is checked before anything is written: a payload
// whose splits do not sum exactly to the total never reaches disk.
func (s *SQLiteStore) CreateIOU(ctx context.Context, iou *models.IOU) error {
	if len(iou.Splits) == 0 {
		return fmt.Errorf("iou requires at least one split")
	}
	sum := money.Zero
	for _, split := range iou.Splits {
		sum = sum.Add(split.Amount)
	}
	if !sum.Equal(iou.Amount) {
		return fmt.Errorf("splits sum to %s, iou total is %s", sum, iou.Amount)
	}

	if iou.ID == "" {
		iou.ID = uuid.New().String()
	}
	if iou.CreatedAt == 0 {
		iou.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ious (id, tab_id, payer_id, amount, description, split_type, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		iou.ID, iou.TabID, iou.PayerID, iou.Amount.String(), iou.Description, string(iou.SplitType), iou.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert iou: %w", err)
	}

	for i := range iou.Splits {
		split := &iou.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.IOUID = iou.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO iou_splits (id, iou_id, participant_id, amount) VALUES (?, ?, ?, ?)",
			split.ID, split.IOUID, split.ParticipantID, split.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListIOUs retrieves all obligations of a tab with their splits, oldest first.
func (s *SQLiteStore) ListIOUs(ctx context.Context, tabID string) ([]*models.IOU, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tab_id, payer_id, amount, description, split_type, created_at FROM ious WHERE tab_id = ? ORDER BY created_at, rowid",
		tabID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ious: %w", err)
	}
	defer rows.Close()

	var ious []*models.IOU
	byID := make(map[string]*models.IOU)
	for rows.Next() {
		iou := &models.IOU{}
		var amount, splitType string
		if err := rows.Scan(&iou.ID, &iou.TabID, &iou.PayerID, &amount, &iou.Description, &splitType, &iou.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan iou: %w", err)
		}
		if iou.Amount, err = money.Parse(amount); err != nil {
			return nil, fmt.Errorf("failed to parse iou amount: %w", err)
		}
		iou.SplitType = models.SplitType(splitType)
		ious = append(ious, iou)
		byID[iou.ID] = iou
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ious: %w", err)
	}

	splitRows, err := s.db.QueryContext(ctx,
		`SELECT sp.id, sp.iou_id, sp.participant_id, sp.amount
		 FROM iou_splits sp JOIN ious i ON i.id = sp.iou_id
		 WHERE i.tab_id = ? ORDER BY i.created_at, i.rowid, sp.rowid`,
		tabID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split models.Split
		var amount string
		if err := splitRows.Scan(&split.ID, &split.IOUID, &split.ParticipantID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if split.Amount, err = money.Parse(amount); err != nil {
			return nil, fmt.Errorf("failed to parse split amount: %w", err)
		}
		if iou, ok := byID[split.IOUID]; ok {
			iou.Splits = append(iou.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return ious, nil
}
