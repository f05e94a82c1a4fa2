package storage

import "time"

// Storage keeps UI sessions. Nothing survives a restart.
type Storage interface {
	CreateSession(session *Session) error
	GetSession(sessionID string) (*Session, error)
	DeleteSession(sessionID string) error

	// CleanupExpired drops sessions idle for longer than maxIdle and reports
	// how many went.
	CleanupExpired(maxIdle time.Duration) int

	Close() error
}
