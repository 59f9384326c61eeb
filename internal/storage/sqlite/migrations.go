package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts are stored as 2dp decimal TEXT so no binary float representation
// ever reaches disk.
const schema = `
CREATE TABLE IF NOT EXISTS tabs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    currency TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    tab_id TEXT NOT NULL,
    name TEXT NOT NULL,
    access_token TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tab_id) REFERENCES tabs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS ious (
    id TEXT PRIMARY KEY,
    tab_id TEXT NOT NULL,
    payer_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    description TEXT NOT NULL,
    split_type TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tab_id) REFERENCES tabs(id) ON DELETE CASCADE,
    FOREIGN KEY (payer_id) REFERENCES participants(id)
);

CREATE TABLE IF NOT EXISTS iou_splits (
    id TEXT PRIMARY KEY,
    iou_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    FOREIGN KEY (iou_id) REFERENCES ious(id) ON DELETE CASCADE,
    FOREIGN KEY (participant_id) REFERENCES participants(id)
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    tab_id TEXT NOT NULL,
    from_id TEXT NOT NULL,
    to_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tab_id) REFERENCES tabs(id) ON DELETE CASCADE,
    FOREIGN KEY (from_id) REFERENCES participants(id),
    FOREIGN KEY (to_id) REFERENCES participants(id)
);

CREATE INDEX IF NOT EXISTS idx_participants_tab_id ON participants(tab_id);
CREATE INDEX IF NOT EXISTS idx_participants_access_token ON participants(access_token);
CREATE INDEX IF NOT EXISTS idx_ious_tab_id ON ious(tab_id);
CREATE INDEX IF NOT EXISTS idx_iou_splits_iou_id ON iou_splits(iou_id);
CREATE INDEX IF NOT EXISTS idx_settlements_tab_id ON settlements(tab_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
