package model

import "encoding/json"

// Client-facing error messages.
const (
	MsgFieldsRequired     = "Text and target language are required"
	MsgBackendUnreachable = "Python backend is not available. Please ensure the Python server is running on port 8000."
	MsgTranslateInternal  = "Internal server error during translation"
	MsgBackendFailed      = "Translation service unavailable"
	MsgHealthUnreachable  = "Backend unreachable"
	MsgIncompleteInput    = "Please select a target language and enter English text to translate"
	MsgBackendOffline     = "Python backend is not running. Please start the Python server on port 8000 to use the translation service."
)

// BackendStatus is the UI's view of backend availability.
type BackendStatus string

const (
	StatusChecking BackendStatus = "checking"
	StatusOnline   BackendStatus = "online"
	StatusOffline  BackendStatus = "offline"
)

// Label is the indicator text shown on the page.
func (s BackendStatus) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusOffline:
		return "Offline"
	default:
		return "Checking..."
	}
}

// TranslationResponse is the part of the backend payload the UI reads. The
// relay itself forwards the full payload untouched.
type TranslationResponse struct {
	TranslatedText string `json:"translated_text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  BackendStatus   `json:"status"`
	Backend json.RawMessage `json:"backend,omitempty"`
	Error   string          `json:"error,omitempty"`
}
