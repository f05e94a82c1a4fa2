package health

import (
	"context"
	"sync"
	"time"

	"translit-web/internal/backend"
	"translit-web/internal/metrics"
	"translit-web/internal/model"
	"translit-web/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Checker is the part of the backend client the poller needs.
type Checker interface {
	CheckHealth(ctx context.Context) backend.HealthResult
}

// Poller tracks backend availability for one UI session. It only changes on
// Refresh; there is no background loop, so an Online reading can be stale
// and a translate call may still fail.
type Poller struct {
	checker Checker

	mu        sync.RWMutex
	status    model.BackendStatus
	checkedAt time.Time
}

func NewPoller(checker Checker) *Poller {
	return &Poller{
		checker: checker,
		status:  model.StatusChecking,
	}
}

func (p *Poller) Status() model.BackendStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Checked reports whether Refresh has completed at least once.
func (p *Poller) Checked() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.checkedAt.IsZero()
}

// Refresh moves to Checking, probes the backend once and settles on Online
// or Offline.
func (p *Poller) Refresh(ctx context.Context) model.BackendStatus {
	p.mu.Lock()
	p.status = model.StatusChecking
	p.mu.Unlock()

	result := p.checker.CheckHealth(ctx)

	status := model.StatusOffline
	if result.Online() {
		status = model.StatusOnline
	}

	p.mu.Lock()
	p.status = status
	p.checkedAt = time.Now()
	p.mu.Unlock()

	metrics.ObserveStatusCheck(string(status))
	entry := logger.WithFields(logrus.Fields{"status": status})
	if result.Err != nil {
		entry = entry.WithError(result.Err)
	}
	entry.Debug("Backend status refreshed")

	return status
}
