package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveBackendCall(t *testing.T) {
	before := testutil.ToFloat64(backendRequestsTotal.WithLabelValues(OpTranslate, OutcomeUnreachable))

	ObserveBackendCall(OpTranslate, OutcomeUnreachable, 15*time.Millisecond)

	after := testutil.ToFloat64(backendRequestsTotal.WithLabelValues(OpTranslate, OutcomeUnreachable))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestObserveHTTPRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	ObserveHTTPRequest("GET", "", 404)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}
