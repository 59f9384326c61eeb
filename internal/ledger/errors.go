package ledger

import "errors"

var (
	// ErrIntegrity means stored data violates an invariant the ledger
	// relies on (e.g. an IOU's splits drifted from its total). The
	// aggregator never guesses a fix; it surfaces the fault.
	ErrIntegrity = errors.New("ledger integrity violation")

	// ErrReconcile means debtor and creditor totals failed to cancel
	// inside the planner. The computation aborts rather than return a
	// plausible-looking but wrong plan.
	ErrReconcile = errors.New("debtor and creditor totals do not reconcile")
)
