package http

import (
	"bytes"
	"errors"
	"net/http"

	"kakei/internal/core"
	applog "kakei/internal/log"
	"kakei/internal/services"
)

// pageData is what index.html and the ledger partial render.
type pageData struct {
	services.View
	Categories    core.Categories
	Today         string
	Periods       []string
	SyncEnabled   bool
	NotifyEnabled bool
}

var periods = []string{"week", "month", "year"}

func (s *Server) newPageData(view services.View) pageData {
	return pageData{
		View:          view,
		Categories:    s.tracker.Categories(),
		Today:         s.tracker.Today().String(),
		Periods:       periods,
		SyncEnabled:   s.tracker.SyncConfigured(),
		NotifyEnabled: s.tracker.NotifyConfigured(),
	}
}

// render executes a named template into a buffer so a failure never leaves a
// half-written page.
func (s *Server) render(r *http.Request, name string, data any) ([]byte, bool) {
	if s.templates == nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template render failed",
			applog.FieldOperation, applog.OpRender,
			"template", name,
			applog.FieldError, err)
		return nil, false
	}
	return buf.Bytes(), true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := s.tracker.View(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to load records", applog.FieldError, err)
		InternalServerError("failed to load expenses").Write(w)
		return
	}
	body, ok := s.render(r, "index.html", s.newPageData(view))
	if !ok {
		InternalServerError("template error").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(string(body)).Write(w)
}

// handleLedger renders the list and totals, optionally limited to a period.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	view, err := s.tracker.Summary(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		ErrorResponse(statusFor(err), err.Error()).Write(w)
		return
	}
	s.writeLedger(w, r, NewHTMXResponse(), view)
}

func (s *Server) writeLedger(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder, view services.View) {
	body, ok := s.render(r, "ledger", s.newPageData(view))
	if !ok {
		resp.Status(http.StatusInternalServerError).BodyHTML(`<div class="error">template error</div>`).Write(w)
		return
	}
	resp.BodyHTML(string(body)).Write(w)
}

// reloadLedger writes the refreshed ledger after a successful command, limited
// to the period the page currently shows. An unknown period falls back to all
// records since the command itself already succeeded.
func (s *Server) reloadLedger(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder, period string) {
	view, err := s.tracker.Summary(r.Context(), period)
	if errors.Is(err, services.ErrValidation) {
		view, err = s.tracker.View(r.Context())
	}
	if err != nil {
		resp.TriggerErrorNotification("failed to reload expenses").
			Status(statusFor(err)).
			Write(w)
		return
	}
	s.writeLedger(w, r, resp, view)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request format").Write(w)
		return
	}

	var msgs services.Messages
	_, err := s.tracker.OnAdd(r.Context(), p.AddForm(), &msgs)
	resp := NewHTMXResponse().TriggerReported(msgs.All())
	if err != nil {
		resp.Status(statusFor(err)).Write(w)
		return
	}
	s.reloadLedger(w, r, resp.TriggerFormReset(), periodOf(r, p))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		BadRequestError("invalid expense id").Write(w)
		return
	}
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request format").Write(w)
		return
	}

	var msgs services.Messages
	err := s.tracker.OnDelete(r.Context(), id, isConfirmed(r, p), &msgs)
	resp := NewHTMXResponse().TriggerReported(msgs.All())
	if err != nil {
		resp.Status(statusFor(err)).Write(w)
		return
	}
	s.reloadLedger(w, r, resp, periodOf(r, p))
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var msgs services.Messages
	_, err := s.tracker.OnSync(r.Context(), &msgs)
	NewHTMXResponse().
		TriggerReported(msgs.All()).
		Status(commandStatus(err)).
		Write(w)
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var msgs services.Messages
	err := s.tracker.OnNotify(r.Context(), &msgs)
	NewHTMXResponse().
		TriggerReported(msgs.All()).
		Status(commandStatus(err)).
		Write(w)
}

// commandStatus is 204 on success so htmx only processes the triggers.
func commandStatus(err error) int {
	if err == nil {
		return http.StatusNoContent
	}
	return statusFor(err)
}
