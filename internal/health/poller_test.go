package health

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"translit-web/internal/backend"
	"translit-web/internal/model"
)

type scriptedChecker struct {
	mu      sync.Mutex
	results []backend.HealthResult
	calls   int
}

func (s *scriptedChecker) CheckHealth(ctx context.Context) backend.HealthResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[s.calls%len(s.results)]
	s.calls++
	return r
}

var (
	online  = backend.HealthResult{Status: model.StatusOnline, Payload: json.RawMessage(`{"status":"healthy"}`)}
	offline = backend.HealthResult{Status: model.StatusOffline, Err: errors.New("connection refused")}
)

func TestPollerStartsChecking(t *testing.T) {
	p := NewPoller(&scriptedChecker{results: []backend.HealthResult{online}})
	if p.Status() != model.StatusChecking {
		t.Errorf("initial status = %s, want checking", p.Status())
	}
	if p.Checked() {
		t.Error("Checked() = true before any refresh")
	}

	p.Refresh(context.Background())
	if !p.Checked() {
		t.Error("Checked() = false after refresh")
	}
}

func TestPollerTransitions(t *testing.T) {
	tests := []struct {
		name    string
		results []backend.HealthResult
		want    []model.BackendStatus
	}{
		{
			name:    "online",
			results: []backend.HealthResult{online},
			want:    []model.BackendStatus{model.StatusOnline},
		},
		{
			name:    "offline",
			results: []backend.HealthResult{offline},
			want:    []model.BackendStatus{model.StatusOffline},
		},
		{
			name:    "retry recovers",
			results: []backend.HealthResult{offline, online},
			want:    []model.BackendStatus{model.StatusOffline, model.StatusOnline},
		},
		{
			name:    "online drops on explicit check",
			results: []backend.HealthResult{online, offline},
			want:    []model.BackendStatus{model.StatusOnline, model.StatusOffline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &scriptedChecker{results: tt.results}
			p := NewPoller(checker)
			for i, want := range tt.want {
				if got := p.Refresh(context.Background()); got != want {
					t.Fatalf("refresh %d = %s, want %s", i, got, want)
				}
				if p.Status() != want {
					t.Fatalf("Status() after refresh %d = %s, want %s", i, p.Status(), want)
				}
			}
			if checker.calls != len(tt.want) {
				t.Errorf("checker called %d times, want %d", checker.calls, len(tt.want))
			}
		})
	}
}

func TestPollerOnlineIsSticky(t *testing.T) {
	checker := &scriptedChecker{results: []backend.HealthResult{online, offline}}
	p := NewPoller(checker)
	p.Refresh(context.Background())

	// The backend would now answer offline, but nothing asked.
	for i := 0; i < 3; i++ {
		if p.Status() != model.StatusOnline {
			t.Fatalf("Status() = %s, want online until next refresh", p.Status())
		}
	}
	if checker.calls != 1 {
		t.Errorf("checker called %d times, want 1", checker.calls)
	}
}
