// Package ledger holds the reconciliation core: net-balance aggregation,
// split division, and the greedy settlement planner.
package ledger

import (
	"fmt"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
)

// Balance is one participant's derived net position.
// Positive = owed money, negative = owes money.
type Balance struct {
	ParticipantID   string
	ParticipantName string
	Net             money.Amount
}

// integrityTolerance is the maximum permitted drift between an IOU's total
// and the sum of its splits. Amounts are exact cents, so anything past one
// cent means the stored data is corrupt, not rounded.
var integrityTolerance = money.FromCents(1)

// NetBalances derives every participant's net position from the full
// obligation and settlement history. Every participant appears exactly once,
// zeros included, in the order given (join order), which makes the result
// reproducible for identical input.
//
// Per IOU the payer is credited the total and each split debtor is debited
// their share; a payer who also holds a split receives both credit and debit,
// which nets out their own share. Per settlement the payer's net moves up and
// the receiver's moves down, both toward zero.
func NetBalances(participants []*models.Participant, ious []*models.IOU, settlements []*models.Settlement) ([]Balance, error) {
	nets := make(map[string]money.Amount, len(participants))
	for _, p := range participants {
		nets[p.ID] = money.Zero
	}

	for _, iou := range ious {
		sum := money.Zero
		for _, split := range iou.Splits {
			sum = sum.Add(split.Amount)
		}
		if sum.Sub(iou.Amount).Abs().Cmp(integrityTolerance) > 0 {
			return nil, fmt.Errorf("%w: iou %s splits sum to %s, total is %s",
				ErrIntegrity, iou.ID, sum, iou.Amount)
		}

		if _, ok := nets[iou.PayerID]; !ok {
			return nil, fmt.Errorf("%w: iou %s payer %s is not a tab participant",
				ErrIntegrity, iou.ID, iou.PayerID)
		}
		nets[iou.PayerID] = nets[iou.PayerID].Add(iou.Amount)

		for _, split := range iou.Splits {
			if _, ok := nets[split.ParticipantID]; !ok {
				return nil, fmt.Errorf("%w: split %s references unknown participant %s",
					ErrIntegrity, split.ID, split.ParticipantID)
			}
			nets[split.ParticipantID] = nets[split.ParticipantID].Sub(split.Amount)
		}
	}

	for _, s := range settlements {
		if _, ok := nets[s.FromID]; !ok {
			return nil, fmt.Errorf("%w: settlement %s references unknown participant %s",
				ErrIntegrity, s.ID, s.FromID)
		}
		if _, ok := nets[s.ToID]; !ok {
			return nil, fmt.Errorf("%w: settlement %s references unknown participant %s",
				ErrIntegrity, s.ID, s.ToID)
		}
		nets[s.FromID] = nets[s.FromID].Add(s.Amount)
		nets[s.ToID] = nets[s.ToID].Sub(s.Amount)
	}

	balances := make([]Balance, 0, len(participants))
	for _, p := range participants {
		balances = append(balances, Balance{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			Net:             nets[p.ID],
		})
	}
	return balances, nil
}
