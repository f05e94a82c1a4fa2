package model

import (
	"errors"
	"strings"
)

// ErrMissingFields is returned when a translation request lacks text or a
// target language. It is resolved before any backend call.
var ErrMissingFields = errors.New("text and target language are required")

// TranslationRequest is the body accepted by POST /translate and forwarded
// unchanged to the backend.
type TranslationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// Validate checks presence only. The target language is not matched against
// the UI's list; the backend decides what it supports.
func (r TranslationRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" || strings.TrimSpace(r.TargetLanguage) == "" {
		return ErrMissingFields
	}
	return nil
}

// TranslateForm is what the UI page posts.
type TranslateForm struct {
	Text           string `form:"text"`
	TargetLanguage string `form:"target_language"`
}

func (f TranslateForm) Request() TranslationRequest {
	return TranslationRequest{Text: f.Text, TargetLanguage: f.TargetLanguage}
}

// PageState is what one browser session sees on the translate page.
type PageState struct {
	Text           string
	TargetLanguage string
	TranslatedText string
	Error          string
}
