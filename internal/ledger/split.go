package ledger

import (
	"fmt"

	"github.com/mmynk/tabby/internal/money"
)

// EvenSplit divides total into n shares using integer-cent division.
// The leftover total mod n cents go to the earliest shares, one cent each,
// so the shares always sum exactly to total and the rule is deterministic:
// callers pass participants in join order, and the first joiners carry the
// extra cent.
func EvenSplit(total money.Amount, n int) ([]money.Amount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total must be positive, got %s", total)
	}

	cents := total.Cents()
	base := cents / int64(n)
	remainder := cents % int64(n)

	shares := make([]money.Amount, n)
	for i := range shares {
		share := base
		if int64(i) < remainder {
			share++
		}
		shares[i] = money.FromCents(share)
	}
	return shares, nil
}

// ValidateCustomSplits checks caller-supplied split amounts against the IOU
// total. Amounts are exact fixed-point cents, so "within one cent" collapses
// to exact equality: 49.99 against a 50.00 total is off by a full cent and
// is rejected.
func ValidateCustomSplits(total money.Amount, amounts []money.Amount) error {
	if len(amounts) == 0 {
		return fmt.Errorf("custom split requires at least one share")
	}

	sum := money.Zero
	for _, a := range amounts {
		if a.IsNegative() {
			return fmt.Errorf("split amounts must not be negative, got %s", a)
		}
		sum = sum.Add(a)
	}
	if !sum.Equal(total) {
		return fmt.Errorf("split amounts sum to %s, total is %s", sum, total)
	}
	return nil
}
