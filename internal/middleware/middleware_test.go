package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"translit-web/internal/model"
	"translit-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if w.Body.String() != id {
		t.Errorf("handler saw %q, header %q", w.Body.String(), id)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestRecoveryReturnsGenericError(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body model.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != model.MsgTranslateInternal {
		t.Errorf("error = %q", body.Error)
	}
	if strings.Contains(w.Body.String(), "kaboom") {
		t.Error("panic value leaked to client")
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Errorf("panic not logged: %q", buf.String())
	}
}
