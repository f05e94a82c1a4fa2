package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"translit-web/internal/metrics"
	"translit-web/internal/model"
	"translit-web/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is where the transliteration backend listens unless
// PYTHON_BACKEND_URL says otherwise.
const DefaultBaseURL = "http://localhost:8000"

// HealthResult is the outcome of one health probe. Err explains an offline
// result and is nil when online.
type HealthResult struct {
	Status  model.BackendStatus
	Payload json.RawMessage
	Err     error
}

func (r HealthResult) Online() bool {
	return r.Status == model.StatusOnline
}

// Client talks to the translation backend. Each call is a single attempt;
// retrying is left to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.L()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth probes GET {base}/health. It never returns an error: every
// failure becomes an offline result.
func (c *Client) CheckHealth(ctx context.Context) HealthResult {
	url := c.baseURL + "/health"
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Error("Failed to create health check request")
		return HealthResult{Status: model.StatusOffline, Err: fmt.Errorf("create health request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(metrics.OpHealth, metrics.OutcomeUnreachable, time.Since(start))
		c.logger.WithError(err).WithField("url", url).Warn("Backend health check failed")
		return HealthResult{Status: model.StatusOffline, Err: &UnreachableError{URL: url, Err: err}}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		metrics.ObserveBackendCall(metrics.OpHealth, metrics.OutcomeHTTPError, time.Since(start))
		c.logger.WithFields(logrus.Fields{
			"url":         url,
			"status_code": resp.StatusCode,
		}).Warn("Backend health check returned non-success status")
		return HealthResult{
			Status: model.StatusOffline,
			Err:    &HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)},
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBackendCall(metrics.OpHealth, metrics.OutcomeUnreachable, time.Since(start))
		c.logger.WithError(err).Warn("Failed to read backend health body")
		return HealthResult{Status: model.StatusOffline, Err: &UnreachableError{URL: url, Err: err}}
	}
	if !json.Valid(body) {
		metrics.ObserveBackendCall(metrics.OpHealth, metrics.OutcomeInvalid, time.Since(start))
		c.logger.WithField("url", url).Warn("Backend health body is not JSON")
		return HealthResult{Status: model.StatusOffline, Err: ErrInvalidPayload}
	}

	duration := time.Since(start)
	metrics.ObserveBackendCall(metrics.OpHealth, metrics.OutcomeSuccess, duration)
	c.logger.WithFields(logrus.Fields{
		"url":         url,
		"duration_ms": duration.Milliseconds(),
	}).Debug("Backend health check passed")

	return HealthResult{Status: model.StatusOnline, Payload: json.RawMessage(body)}
}

// Translate posts {text, target_language} to {base}/translate and returns the
// backend's JSON body untouched. Failures are *HTTPError, *UnreachableError,
// ErrInvalidPayload or a plain wrapped error.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (json.RawMessage, error) {
	url := c.baseURL + "/translate"
	log := c.logger.WithFields(logrus.Fields{
		"target_language": targetLanguage,
		"text_length":     len(text),
	})
	log.Debug("Forwarding translation request")
	metrics.ObserveTextSize(len(text))

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(model.TranslationRequest{Text: text, TargetLanguage: targetLanguage}); err != nil {
		log.WithError(err).Error("Failed to encode translation request")
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		log.WithError(err).Error("Failed to create translation request")
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(metrics.OpTranslate, metrics.OutcomeUnreachable, time.Since(start))
		log.WithError(err).WithField("url", url).Error("Translation backend unreachable")
		return nil, &UnreachableError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBackendCall(metrics.OpTranslate, metrics.OutcomeUnreachable, time.Since(start))
		log.WithError(err).Error("Failed to read translation response")
		return nil, &UnreachableError{URL: url, Err: err}
	}
	duration := time.Since(start)

	if !isSuccess(resp.StatusCode) {
		metrics.ObserveBackendCall(metrics.OpTranslate, metrics.OutcomeHTTPError, duration)
		message := errorDetail(body)
		log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"detail":      message,
		}).Warn("Translation backend returned non-success status")
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: message}
	}

	if !json.Valid(body) {
		metrics.ObserveBackendCall(metrics.OpTranslate, metrics.OutcomeInvalid, duration)
		log.WithField("status_code", resp.StatusCode).Error("Translation response is not JSON")
		return nil, ErrInvalidPayload
	}

	metrics.ObserveBackendCall(metrics.OpTranslate, metrics.OutcomeSuccess, duration)
	log.WithField("duration_ms", duration.Milliseconds()).Info("Translation completed")

	return json.RawMessage(body), nil
}

// errorDetail pulls the backend's string "detail" field, falling back to a
// generic message for anything else.
func errorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.MsgBackendFailed
	}
	if detail, ok := payload.Detail.(string); ok && detail != "" {
		return detail
	}
	return model.MsgBackendFailed
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
