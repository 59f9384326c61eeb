// Package models defines the core domain records for the tab ledger.
//
// # Records
//
//   - Tab: a shared ledger scoping a group of participants and a single currency
//   - Participant: one member of a tab, identified by an opaque access token
//   - IOU: a recorded expense with a payer and a set of debtor splits
//   - Split: one participant's share of an IOU's total
//   - Settlement: a real-world payment between two participants
//
// Obligation and settlement records are append-only: once written they are
// never edited or deleted, and every balance is recomputed from the full
// history. Net balances are derived, never stored.
//
// # Design Principles
//
// 1. **Append-only ledger**: no update paths for IOUs, splits, or settlements
// 2. **Exact money**: every amount is a fixed-point money.Amount, never a float
// 3. **Avoid circular references**: records reference each other by ID string
package models
