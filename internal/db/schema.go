package db

import "database/sql"

func Migrate(db *sql.DB) {
	db.Exec(`
	CREATE TABLE IF NOT EXISTS seeds (
		id TEXT PRIMARY KEY,
		entity_id TEXT,
		raw TEXT,
		commitment TEXT,
		created_at INTEGER,
		revealed_at INTEGER
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		seed_id TEXT,
		session_id TEXT,
		commitment TEXT,
		client_seed TEXT,
		nonce INTEGER,
		cursor INTEGER,
		mode TEXT,
		game TEXT,
		outcome TEXT DEFAULT '',
		revealed_seed TEXT DEFAULT '',
		created_at INTEGER
	);`)

	db.Exec(`CREATE INDEX IF NOT EXISTS idx_rounds_seed ON rounds(seed_id);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT,
		action TEXT,
		metadata TEXT,
		created_at INTEGER
	);`)
}
