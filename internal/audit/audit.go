package audit

import (
	"database/sql"
	"time"
)

// Service records security-relevant occurrences: premature reveal attempts,
// commitment mismatches, strict-close violations. Entries never contain raw
// seed material for unrevealed seeds.
type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Log(subject, action, metadata string) {

	s.db.Exec(`
	INSERT INTO audit_logs(subject, action, metadata, created_at)
	VALUES (?, ?, ?, ?)
	`, subject, action, metadata, time.Now().Unix())
}
