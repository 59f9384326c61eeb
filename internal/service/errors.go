package service

import "errors"

// ErrValidation marks malformed or inconsistent caller input: non-positive
// amounts, missing custom splits, splits that do not sum to the total,
// self-settlements. Wrapped errors carry the specific violated constraint.
var ErrValidation = errors.New("validation failed")

// Not-found conditions reuse storage.ErrNotFound; integrity and
// reconciliation faults reuse ledger.ErrIntegrity and ledger.ErrReconcile.
// Callers branch with errors.Is.
