package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    taken_at             TEXT NOT NULL,
    cardholders          INTEGER NOT NULL,
    transactions         INTEGER NOT NULL,
    failed               INTEGER NOT NULL,
    merchants            INTEGER NOT NULL,
    volume               REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at);
`
