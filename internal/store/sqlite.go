package store

import (
	"database/sql"
	"time"
)

// SQLite persists seeds and rounds in the platform database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) CreateSeed(rec SeedRecord) error {
	_, err := s.db.Exec(`
	INSERT INTO seeds(id, entity_id, raw, commitment, created_at)
	VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.EntityID, rec.Raw, rec.Commitment, rec.CreatedAt.Unix())
	return err
}

func (s *SQLite) Seed(id string) (SeedRecord, error) {
	row := s.db.QueryRow(`
	SELECT id, entity_id, raw, commitment, created_at, revealed_at
	FROM seeds WHERE id = ?
	`, id)

	var rec SeedRecord
	var created int64
	var revealed sql.NullInt64
	err := row.Scan(&rec.ID, &rec.EntityID, &rec.Raw, &rec.Commitment, &created, &revealed)
	if err == sql.ErrNoRows {
		return SeedRecord{}, ErrNotFound
	}
	if err != nil {
		return SeedRecord{}, err
	}
	rec.CreatedAt = time.Unix(created, 0).UTC()
	if revealed.Valid {
		at := time.Unix(revealed.Int64, 0).UTC()
		rec.RevealedAt = &at
	}
	return rec, nil
}

func (s *SQLite) MarkSeedRevealed(id string, at time.Time) error {
	res, err := s.db.Exec(`UPDATE seeds SET revealed_at = ? WHERE id = ?`, at.Unix(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLite) CreateRound(rec RoundRecord) error {
	_, err := s.db.Exec(`
	INSERT INTO rounds(id, seed_id, session_id, commitment, client_seed, nonce, cursor, mode, game, outcome, revealed_seed, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SeedID, rec.SessionID, rec.Commitment, rec.ClientSeed,
		rec.Nonce, rec.Cursor, rec.Mode, rec.Game, rec.Outcome, rec.RevealedSeed, rec.CreatedAt.Unix())
	return err
}

func (s *SQLite) Round(id string) (RoundRecord, error) {
	row := s.db.QueryRow(`
	SELECT id, seed_id, session_id, commitment, client_seed, nonce, cursor, mode, game, outcome, revealed_seed, created_at
	FROM rounds WHERE id = ?
	`, id)
	return scanRound(row)
}

func (s *SQLite) AttachOutcome(id, outcome string) error {
	res, err := s.db.Exec(`UPDATE rounds SET outcome = ? WHERE id = ?`, outcome, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLite) AttachReveal(seedID, raw string) error {
	_, err := s.db.Exec(`UPDATE rounds SET revealed_seed = ? WHERE seed_id = ?`, raw, seedID)
	return err
}

func (s *SQLite) RoundsBySeed(seedID string) ([]RoundRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, seed_id, session_id, commitment, client_seed, nonce, cursor, mode, game, outcome, revealed_seed, created_at
	FROM rounds WHERE seed_id = ? ORDER BY nonce
	`, seedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var rec RoundRecord
	var created int64
	err := row.Scan(&rec.ID, &rec.SeedID, &rec.SessionID, &rec.Commitment, &rec.ClientSeed,
		&rec.Nonce, &rec.Cursor, &rec.Mode, &rec.Game, &rec.Outcome, &rec.RevealedSeed, &created)
	if err == sql.ErrNoRows {
		return RoundRecord{}, ErrNotFound
	}
	if err != nil {
		return RoundRecord{}, err
	}
	rec.CreatedAt = time.Unix(created, 0).UTC()
	return rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
