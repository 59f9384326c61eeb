package models

// Tab represents a shared ledger for a group of participants.
// A tab has exactly one currency; there is no FX.
type Tab struct {
	// ID is the unique identifier for the tab (UUID format).
	ID string

	// Name is the display name of the tab (e.g., "Ski Trip", "Flat 4B").
	Name string

	// Currency is the ISO-4217-like currency code for every amount on
	// this tab (e.g., "USD", "EUR").
	Currency string

	// InviteCode is the short unique code used to join or look up the tab.
	InviteCode string

	// CreatedAt is the Unix timestamp when the tab was created.
	CreatedAt int64
}

// Participant represents one member of a tab.
// A participant belongs to exactly one tab and is never deleted.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// TabID is the tab this participant belongs to.
	TabID string

	// Name is the participant's display name within the tab.
	Name string

	// AccessToken is the opaque credential that identifies this
	// participant to the session layer. Unique across all participants.
	AccessToken string

	// CreatedAt is the Unix timestamp when the participant joined.
	// Join order drives the deterministic enumeration used by the
	// settlement planner.
	CreatedAt int64
}
