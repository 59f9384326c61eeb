package ledger

import (
	"fmt"

	"github.com/mmynk/tabby/internal/money"
)

// Transfer is one edge of a settlement plan: From pays To the given amount.
type Transfer struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   money.Amount
}

// Plan converts net balances into a sequence of transfers that drives every
// participant to exactly zero. Zero-balance participants never appear in the
// output. The edge count is at most len(balances) - 1.
//
// The matching is greedy: debtors and creditors are walked in the order they
// appear in balances, pairing each debtor against creditors until its
// remainder is exhausted. Different enumeration orders yield different,
// equally valid edge sets, so callers must pass a stable order. Greedy does
// not always minimize edge count; it is the accepted trade for a linear walk.
func Plan(balances []Balance) ([]Transfer, error) {
	type party struct {
		id, name  string
		remaining money.Amount
	}

	var debtors, creditors []*party
	debtorTotal, creditorTotal := money.Zero, money.Zero
	for _, b := range balances {
		switch {
		case b.Net.IsNegative():
			debtors = append(debtors, &party{b.ParticipantID, b.ParticipantName, b.Net.Abs()})
			debtorTotal = debtorTotal.Add(b.Net.Abs())
		case b.Net.IsPositive():
			creditors = append(creditors, &party{b.ParticipantID, b.ParticipantName, b.Net})
			creditorTotal = creditorTotal.Add(b.Net)
		}
	}

	// Conservation: the ledger only ever records zero-sum events, so the
	// two totals must cancel. A residue past one cent is corrupt data.
	if debtorTotal.Sub(creditorTotal).Abs().Cmp(money.FromCents(1)) > 0 {
		return nil, fmt.Errorf("%w: debts %s vs credits %s", ErrReconcile, debtorTotal, creditorTotal)
	}

	var transfers []Transfer
	j := 0
	for _, d := range debtors {
		for d.remaining.IsPositive() && j < len(creditors) {
			c := creditors[j]
			amount := d.remaining.Min(c.remaining)
			if amount.IsPositive() {
				transfers = append(transfers, Transfer{
					FromID:   d.id,
					FromName: d.name,
					ToID:     c.id,
					ToName:   c.name,
					Amount:   amount,
				})
			}
			d.remaining = d.remaining.Sub(amount)
			c.remaining = c.remaining.Sub(amount)
			if !c.remaining.IsPositive() {
				j++
			}
		}
	}

	return transfers, nil
}
