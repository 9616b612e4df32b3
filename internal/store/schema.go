package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cigarette_logs (
    id                 TEXT PRIMARY KEY,
    timestamp          INTEGER NOT NULL,
    mood               TEXT,
    activity           TEXT,
    location_latitude  REAL,
    location_longitude REAL,
    location_address   TEXT,
    notes              TEXT,
    trigger_tags       TEXT,
    synced             INTEGER NOT NULL DEFAULT 0,
    created_at         INTEGER NOT NULL,
    updated_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON cigarette_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_logs_synced ON cigarette_logs(synced);

CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`
