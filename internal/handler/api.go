package handler

import (
	"errors"
	"net/http"

	"translit-web/internal/backend"
	"translit-web/internal/config"
	"translit-web/internal/health"
	"translit-web/internal/middleware"
	"translit-web/internal/model"
	"translit-web/internal/service"
	"translit-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler serves the JSON relay endpoints.
type APIHandler struct {
	checker          health.Checker
	translateService *service.TranslateService
	languages        []config.Language
}

func NewAPIHandler(checker health.Checker, translateService *service.TranslateService, languages []config.Language) *APIHandler {
	return &APIHandler{
		checker:          checker,
		translateService: translateService,
		languages:        languages,
	}
}

// Health reports backend availability, probing the backend on every call.
func (h *APIHandler) Health(c *gin.Context) {
	result := h.checker.CheckHealth(c.Request.Context())
	if result.Online() {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:  model.StatusOnline,
			Backend: result.Payload,
		})
		return
	}

	resp := model.HealthResponse{Status: model.StatusOffline}
	var httpErr *backend.HTTPError
	if !errors.As(result.Err, &httpErr) {
		resp.Error = model.MsgHealthUnreachable
	}
	c.JSON(http.StatusServiceUnavailable, resp)
}

// Translate relays one translation request to the backend.
func (h *APIHandler) Translate(c *gin.Context) {
	var req model.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
		}).WithError(err).Debug("Unreadable translation request")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: model.MsgFieldsRequired})
		return
	}

	payload, err := h.translateService.Translate(c.Request.Context(), req)
	if err != nil {
		status, message := service.Failure(err)
		if status >= http.StatusInternalServerError {
			logger.WithFields(logrus.Fields{
				"request_id":      middleware.GetRequestID(c),
				"target_language": req.TargetLanguage,
				"status":          status,
			}).WithError(err).Error("Translation relay failed")
		}
		_ = c.Error(err)
		c.JSON(status, model.ErrorResponse{Error: message})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Languages lists the target languages the UI offers.
func (h *APIHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"supported_languages": h.languages,
	})
}
