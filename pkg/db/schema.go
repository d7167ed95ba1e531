package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per render or words invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    place TEXT NOT NULL,
    query_type TEXT NOT NULL,
    network_type TEXT NOT NULL,
    key_size INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'success',  -- success, failed
    error_type TEXT,
    error_message TEXT,

    -- Graph and counting results
    way_count INTEGER DEFAULT 0,
    named_way_count INTEGER DEFAULT 0,
    word_count INTEGER DEFAULT 0,
    detected_language TEXT,

    -- Artifacts
    image_path TEXT,
    palette_json TEXT,          -- word -> hex, key order preserved
    top_keywords TEXT,          -- JSON array of "word:count" strings

    duration_ms INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_place ON runs(place);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
