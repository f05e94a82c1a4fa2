package storage

import (
	"sync"
	"time"

	"translit-web/internal/health"
	"translit-web/internal/model"

	"github.com/google/uuid"
)

// Session is one browser's page state plus its own view of backend health.
type Session struct {
	ID        string
	Health    *health.Poller
	CreatedAt time.Time

	mu        sync.Mutex
	state     model.PageState
	updatedAt time.Time
}

func NewSession(checker health.Checker) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Health:    health.NewPoller(checker),
		CreatedAt: now,
		updatedAt: now,
	}
}

func (s *Session) State() model.PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the page state. Overlapping translate submissions
// are not ordered: whichever finishes last wins.
func (s *Session) Update(fn func(state *model.PageState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.updatedAt = time.Now()
}

func (s *Session) Touch() {
	s.mu.Lock()
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
