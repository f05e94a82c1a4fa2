package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for backend calls. A zero timeout
// leaves requests unbounded, which is the relay's default contract.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
