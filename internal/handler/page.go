package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"translit-web/internal/config"
	"translit-web/internal/health"
	"translit-web/internal/model"
	"translit-web/internal/service"
	"translit-web/internal/storage"
	"translit-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// PageHandler serves the translate page. Each browser gets its own session
// holding the form and its own backend status.
type PageHandler struct {
	store            storage.Storage
	checker          health.Checker
	translateService *service.TranslateService
	cookieName       string
	cookieMaxAge     int
	title            string
	languages        []config.Language
}

func NewPageHandler(store storage.Storage, checker health.Checker, translateService *service.TranslateService, cfg *config.Config) *PageHandler {
	return &PageHandler{
		store:            store,
		checker:          checker,
		translateService: translateService,
		cookieName:       cfg.Session.CookieName,
		cookieMaxAge:     int(cfg.Session.TTL / time.Second),
		title:            cfg.UI.Title,
		languages:        cfg.UI.Languages,
	}
}

type pageView struct {
	Title          string
	Status         model.BackendStatus
	StatusLabel    string
	Offline        bool
	OfflineMessage string
	Languages      []config.Language
	State          model.PageState
	SelectedLabel  string
}

// Index renders the page. A session's first view triggers its health check.
func (h *PageHandler) Index(c *gin.Context) {
	session := h.session(c)
	if !session.Health.Checked() {
		session.Health.Refresh(c.Request.Context())
	}
	c.HTML(http.StatusOK, "index.html", h.view(session))
}

// Retry re-runs the health check on request.
func (h *PageHandler) Retry(c *gin.Context) {
	session := h.session(c)
	session.Health.Refresh(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

// Translate handles the form submit. The backend is not called when the
// input is incomplete or the session last saw the backend offline.
func (h *PageHandler) Translate(c *gin.Context) {
	session := h.session(c)

	var form model.TranslateForm
	_ = c.ShouldBind(&form)
	session.Update(func(state *model.PageState) {
		state.Text = form.Text
		state.TargetLanguage = form.TargetLanguage
		state.Error = ""
	})

	if err := form.Request().Validate(); err != nil {
		h.fail(session, model.MsgIncompleteInput)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if session.Health.Status() == model.StatusOffline {
		h.fail(session, model.MsgBackendOffline)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	payload, err := h.translateService.Translate(c.Request.Context(), form.Request())
	if err != nil {
		_, message := service.Failure(err)
		logger.WithFields(logrus.Fields{
			"session_id":      session.ID,
			"target_language": form.TargetLanguage,
		}).WithError(err).Warn("Page translation failed")
		h.fail(session, message)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	text, err := service.TranslatedText(payload)
	if err != nil {
		logger.WithError(err).Error("Backend payload has no readable translated_text")
		h.fail(session, model.MsgTranslateInternal)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	session.Update(func(state *model.PageState) {
		state.TranslatedText = text
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// Clear resets the form and output.
func (h *PageHandler) Clear(c *gin.Context) {
	session := h.session(c)
	session.Update(func(state *model.PageState) {
		*state = model.PageState{}
	})
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) fail(session *storage.Session, message string) {
	session.Update(func(state *model.PageState) {
		state.Error = message
	})
}

// session returns the caller's session, starting a new one when the cookie
// is missing or has expired.
func (h *PageHandler) session(c *gin.Context) *storage.Session {
	if id, err := c.Cookie(h.cookieName); err == nil {
		if session, err := h.store.GetSession(id); err == nil {
			session.Touch()
			return session
		}
	}

	session := storage.NewSession(h.checker)
	if err := h.store.CreateSession(session); err != nil {
		logger.WithError(err).Error("Failed to store UI session")
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, session.ID, h.cookieMaxAge, "/", "", false, true)
	return session
}

func (h *PageHandler) view(session *storage.Session) pageView {
	status := session.Health.Status()
	state := session.State()

	v := pageView{
		Title:          h.title,
		Status:         status,
		StatusLabel:    status.Label(),
		Offline:        status == model.StatusOffline,
		OfflineMessage: model.MsgBackendOffline,
		Languages:      h.languages,
		State:          state,
	}
	for _, lang := range h.languages {
		if lang.ID == state.TargetLanguage {
			v.SelectedLabel = lang.Label
			break
		}
	}
	return v
}
