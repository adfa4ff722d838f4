package contact

import (
	"embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/contactform"
	"github.com/TAPAN-2835/Business-Website/httputil"
	"github.com/TAPAN-2835/Business-Website/internal/app/resources"
	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/middleware"
	"github.com/TAPAN-2835/Business-Website/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Templates is the contact page set.
var Templates = templates.Set{
	Name:     "contact",
	FS:       templatesFS,
	Patterns: []string{"templates/*.gohtml"},
}

const (
	pageTitle       = "Contact"
	pageDescription = "Tell us about your project and we will get back to you."
)

// Handler serves the contact page and both submission channels.
type Handler struct {
	svc    *Service
	engine *templates.Engine
	site   *site.Site
	core   *config.CoreConfig
	logger *zap.Logger
	banner time.Duration
}

// NewHandler wires the contact handlers. A zero banner uses
// contactform.DefaultBannerTimeout.
func NewHandler(svc *Service, engine *templates.Engine, s *site.Site, core *config.CoreConfig, banner time.Duration, logger *zap.Logger) *Handler {
	if banner <= 0 {
		banner = contactform.DefaultBannerTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, engine: engine, site: s, core: core, logger: logger, banner: banner}
}

// Routes mounts the page, the form POST, the JSON endpoint and the live
// field check.
func (h *Handler) Routes(r chi.Router) {
	for _, p := range []string{"/contact", "/contact.html"} {
		r.Get(p, h.ServePage)
		r.Post(p, h.HandleForm)
	}
	r.Route(contactform.DefaultEndpoint, func(r chi.Router) {
		r.Use(middleware.CORSFromConfig(h.core))
		r.With(middleware.RequireJSON).Post("/", h.HandleAPI)
		r.With(middleware.RequireJSON).Post(validatePath, h.HandleValidate)
	})
}

// ServePage renders an empty form. ?subject= preselects a known subject.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	page := contactform.NewPageState()
	if sub := r.URL.Query().Get("subject"); h.site.HasSubject(sub) {
		var vs contactform.Values
		vs[contactform.Subject] = sub
		page.Fill(vs)
	}
	h.render(w, r, http.StatusOK, page)
}

// HandleForm runs the submit protocol over a posted form and re-renders
// the page: 200 with the banner on success, 422 with inline errors, 503
// when the message could not be stored.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Debug("contact form parse failed", zap.Error(err))
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	var raw contactform.Values
	for _, f := range contactform.Fields {
		raw[f] = r.PostForm.Get(f.String())
	}
	vs := h.svc.Clean(raw)

	page := contactform.NewPageState()
	var stored models.ContactMessage
	form := contactform.New(page,
		h.svc.Submitter(models.ChannelForm, func(m models.ContactMessage) { stored = m }),
		contactform.WithBannerTimeout(h.banner),
		// The page script dismisses the banner.
		contactform.WithAfterFunc(func(time.Duration, func()) {}),
	)
	for _, f := range contactform.Fields {
		if f == contactform.Subject {
			form.Change(f, vs[f])
			continue
		}
		form.Input(f, vs[f])
	}
	page.Fill(form.Values())

	out, err := form.Submit(r.Context())
	switch {
	case err != nil:
		h.svc.Failed(models.ChannelForm, err)
		h.render(w, r, http.StatusServiceUnavailable, page)
	case !out.Accepted:
		h.svc.Rejected(models.ChannelForm, out.Results)
		h.render(w, r, http.StatusUnprocessableEntity, page)
	default:
		h.svc.Accepted(models.ChannelForm, stored)
		h.render(w, r, http.StatusOK, page)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page *contactform.PageState) {
	h.engine.Render(w, status, "contact", Data{
		Layout: resources.NewLayout(r, h.site, pageTitle, pageDescription),
		Form:   newFormView(page, h.site.Subjects, h.banner),
	})
}

// apiRequest is the JSON body of POST /api/contact. Timestamp is accepted
// so clients can post a Snapshot as-is; the server stamps its own time.
type apiRequest struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type apiResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// HandleAPI accepts a JSON submission: 201 with the message id, 422 with
// per-field results, 400 for undecodable bodies, 503 on storage failure.
func (h *Handler) HandleAPI(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := httputil.BindJSON(r, &req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httputil.JSONError(w, status, "invalid_request", err.Error())
		return
	}

	var raw contactform.Values
	raw[contactform.Name] = req.Name
	raw[contactform.Email] = req.Email
	raw[contactform.Phone] = req.Phone
	raw[contactform.Subject] = req.Subject
	raw[contactform.Message] = req.Message

	snap := contactform.NewSnapshot(h.svc.Clean(raw), time.Now())
	if rs := snap.Validate(); !rs.Accepted() {
		h.svc.Rejected(models.ChannelAPI, rs)
		httputil.JSONFieldErrors(w, rs.Errors())
		return
	}

	msg, err := h.svc.Accept(r.Context(), snap, models.ChannelAPI)
	if err != nil {
		h.svc.Failed(models.ChannelAPI, err)
		httputil.JSONError(w, http.StatusServiceUnavailable, "submission_failed", contactform.FailureNotice)
		return
	}
	h.svc.Accepted(models.ChannelAPI, msg)
	httputil.WriteJSON(w, http.StatusCreated, apiResponse{Status: "ok", ID: msg.ID})
}

// validateRequest is the JSON body of POST /api/contact/validate.
type validateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// fieldState is how the page renders one field after it is validated.
type fieldState struct {
	Field       string `json:"field"`
	Status      string `json:"status"`
	Class       string `json:"class"`
	Message     string `json:"message"`
	AriaInvalid string `json:"aria_invalid"`
}

// HandleValidate runs the live check the page makes when a field loses
// focus or the subject changes. The value is validated exactly as a
// submission would be, and the field's display state is returned.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := httputil.BindJSON(r, &req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httputil.JSONError(w, status, "invalid_request", err.Error())
		return
	}
	fld, ok := contactform.ParseField(req.Field)
	if !ok {
		httputil.JSONError(w, http.StatusBadRequest, "unknown_field", "unknown field "+strconv.Quote(req.Field))
		return
	}

	var vs contactform.Values
	vs[fld] = req.Value
	vs = h.svc.Clean(vs)

	page := contactform.NewPageState()
	form := contactform.New(page, nil)
	if fld == contactform.Subject {
		form.Change(fld, vs[fld])
	} else {
		form.Input(fld, vs[fld])
		form.Blur(fld)
	}

	st := page.Field(fld)
	httputil.WriteJSON(w, http.StatusOK, fieldState{
		Field:       fld.String(),
		Status:      st.Status.String(),
		Class:       st.Class,
		Message:     st.Message,
		AriaInvalid: st.AriaInvalid,
	})
}
