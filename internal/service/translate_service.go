package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"translit-web/internal/backend"
	"translit-web/internal/model"
)

// Translator is the backend call the relay makes.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (json.RawMessage, error)
}

type TranslateService struct {
	translator Translator
}

func NewTranslateService(translator Translator) *TranslateService {
	return &TranslateService{
		translator: translator,
	}
}

// Translate validates req and makes exactly one backend call. Invalid input
// returns model.ErrMissingFields without touching the backend.
func (s *TranslateService) Translate(ctx context.Context, req model.TranslationRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.translator.Translate(ctx, req.Text, req.TargetLanguage)
}

// TranslatedText extracts translated_text from a backend payload.
func TranslatedText(payload json.RawMessage) (string, error) {
	var resp model.TranslationResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", err
	}
	return resp.TranslatedText, nil
}

// Failure maps a Translate error to the status and message the client sees.
// Unknown errors never leak their text.
func Failure(err error) (int, string) {
	var httpErr *backend.HTTPError
	var unreachable *backend.UnreachableError

	switch {
	case errors.Is(err, model.ErrMissingFields):
		return http.StatusBadRequest, model.MsgFieldsRequired
	case errors.As(err, &httpErr):
		return httpErr.StatusCode, httpErr.Message
	case errors.As(err, &unreachable):
		return http.StatusServiceUnavailable, model.MsgBackendUnreachable
	default:
		return http.StatusInternalServerError, model.MsgTranslateInternal
	}
}
