package models

import "github.com/mmynk/tabby/internal/money"

// SplitType describes how an IOU's total is divided among participants.
type SplitType string

const (
	// SplitEven divides the total across all current tab participants,
	// including the payer.
	SplitEven SplitType = "even"

	// SplitCustom uses caller-supplied per-participant amounts.
	SplitCustom SplitType = "custom"
)

// IOU represents a recorded expense: one participant paid the total, and the
// attached splits say who owes what toward it. Immutable once created.
type IOU struct {
	// ID is the unique identifier for the IOU (UUID format).
	ID string

	// TabID is the tab this IOU belongs to.
	TabID string

	// PayerID is the participant who paid the total.
	PayerID string

	// Amount is the total paid. Always positive; currency implied by the tab.
	Amount money.Amount

	// Description is free text ("lunch", "gas").
	Description string

	// SplitType is how the total was divided.
	SplitType SplitType

	// CreatedAt is the Unix timestamp when the IOU was recorded.
	CreatedAt int64

	// Splits are the debtor shares. Invariant: their amounts sum to Amount.
	Splits []Split
}

// Split is one participant's share of an IOU's total.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// IOUID is the IOU this split belongs to.
	IOUID string

	// ParticipantID is the debtor who owes this share.
	ParticipantID string

	// Amount is the share owed. The payer's own share nets out against
	// their payment during aggregation.
	Amount money.Amount
}

// Settlement represents a real-world payment between two participants,
// reducing what From owes To. Immutable once created.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// TabID is the tab this settlement belongs to.
	TabID string

	// FromID is the participant who paid (debtor settling up).
	FromID string

	// ToID is the participant who received the payment.
	ToID string

	// Amount is the payment amount. Always positive.
	Amount money.Amount

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
