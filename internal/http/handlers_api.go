package http

import (
	"net/http"

	"kakei/internal/core"
	"kakei/internal/services"
)

// apiResult is the envelope of every JSON command response.
type apiResult struct {
	Messages []services.Message `json:"messages"`
	Error    string             `json:"error,omitempty"`
	Record   *core.Record       `json:"record,omitempty"`
	Synced   int                `json:"synced,omitempty"`
}

func writeResult(w http.ResponseWriter, status int, res apiResult, err error) {
	if res.Messages == nil {
		res.Messages = []services.Message{}
	}
	if err != nil {
		res.Error = err.Error()
		status = statusFor(err)
	}
	NewHTMXResponse().Status(status).BodyJSON(res).Write(w)
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().BodyJSON(map[string]any{"categories": s.tracker.Categories()}).Write(w)
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	view, err := s.tracker.View(r.Context())
	if err != nil {
		writeResult(w, 0, apiResult{}, err)
		return
	}
	NewHTMXResponse().BodyJSON(view).Write(w)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	view, err := s.tracker.Summary(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeResult(w, 0, apiResult{}, err)
		return
	}
	NewHTMXResponse().BodyJSON(view).Write(w)
}

func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			BodyJSON(apiResult{Messages: []services.Message{}, Error: "invalid request body"}).
			Write(w)
		return
	}

	var msgs services.Messages
	rec, err := s.tracker.OnAdd(r.Context(), p.AddForm(), &msgs)
	res := apiResult{Messages: msgs.All()}
	if err == nil {
		res.Record = &rec
	}
	writeResult(w, http.StatusCreated, res, err)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			BodyJSON(apiResult{Messages: []services.Message{}, Error: "invalid expense id"}).
			Write(w)
		return
	}
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			BodyJSON(apiResult{Messages: []services.Message{}, Error: "invalid request body"}).
			Write(w)
		return
	}

	var msgs services.Messages
	err := s.tracker.OnDelete(r.Context(), id, isConfirmed(r, p), &msgs)
	writeResult(w, http.StatusOK, apiResult{Messages: msgs.All()}, err)
}

func (s *Server) handleAPISync(w http.ResponseWriter, r *http.Request) {
	var msgs services.Messages
	n, err := s.tracker.OnSync(r.Context(), &msgs)
	writeResult(w, http.StatusOK, apiResult{Messages: msgs.All(), Synced: n}, err)
}

func (s *Server) handleAPINotify(w http.ResponseWriter, r *http.Request) {
	var msgs services.Messages
	err := s.tracker.OnNotify(r.Context(), &msgs)
	writeResult(w, http.StatusOK, apiResult{Messages: msgs.All()}, err)
}
