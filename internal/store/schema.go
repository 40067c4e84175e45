package store

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);

-- data, totals and metadata hold the JSON payload of one sub-program
CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    report_type TEXT NOT NULL,
    program_id INTEGER NOT NULL,
    report_date TEXT NOT NULL,      -- YYYY-MM-DD
    data TEXT NOT NULL,
    totals TEXT,
    metadata TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_user_program
    ON reports(user_id, program_id);

-- account names are unique ignoring case
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cuenta TEXT NOT NULL UNIQUE COLLATE NOCASE,
    clasificacion TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT ''
);
`
