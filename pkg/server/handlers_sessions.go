package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
	"github.com/matzehuels/fattree/pkg/pipeline"
	"github.com/matzehuels/fattree/pkg/selection"
	"github.com/matzehuels/fattree/pkg/session"
)

// SessionResponse describes a session and its selection.
type SessionResponse struct {
	ID        string          `json:"id"`
	Params    fattree.Params  `json:"params"`
	Counts    fattree.Counts  `json:"counts"`
	State     selection.State `json:"state"`
	Hosts     []int           `json:"hosts"`
	Selected  []int           `json:"selected"`
	Highlight []int           `json:"highlight"`
	Route     *RouteSummary   `json:"route,omitempty"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// RouteSummary describes the highlighted route of a session.
type RouteSummary struct {
	Ancestor int  `json:"ancestor"`
	Hops     int  `json:"hops"`
	Complete bool `json:"complete"`
	Shared   bool `json:"shared"`
}

func newSessionResponse(sess *session.Session, c *selection.Controller) SessionResponse {
	resp := SessionResponse{
		ID:        sess.ID,
		Params:    c.Params(),
		Counts:    c.Topology().Counts(),
		State:     c.State(),
		Hosts:     c.Snapshot().Hosts,
		Selected:  make([]int, 0, 2),
		Highlight: []int{},
		ExpiresAt: sess.ExpiresAt,
	}
	for _, id := range c.Selected() {
		resp.Selected = append(resp.Selected, int(id))
	}
	for _, e := range c.Highlight() {
		resp.Highlight = append(resp.Highlight, int(e))
	}
	if rt, ok := c.Route(); ok {
		resp.Route = &RouteSummary{
			Ancestor: int(rt.Ancestor),
			Hops:     rt.Hops(),
			Complete: rt.Complete,
			Shared:   rt.Shared,
		}
	}
	return resp
}

// loadSession fetches the session named in the URL and restores its
// controller.
func (s *Server) loadSession(r *http.Request) (*session.Session, *selection.Controller, error) {
	id := chi.URLParam(r, "id")
	if !session.ValidID(id) {
		return nil, nil, errs.New(errs.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "load session")
	}
	if sess == nil {
		return nil, nil, errs.New(errs.ErrCodeSessionNotFound, "session %q not found", id)
	}
	c, err := selection.Restore(sess.Snapshot(), selection.WithLogger(s.logger))
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "restore session %s", id)
	}
	return sess, c, nil
}

// mutate runs fn on the restored controller and stores the result. When fn
// fails, the stored session is left untouched and the error is reported
// together with the unchanged session.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*selection.Controller) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, c, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := fn(c); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.Update(c.Snapshot(), s.sessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "store session"))
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess, c))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req TopologyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := selection.New(req.Params(), selection.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := session.New(c.Params(), s.sessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "store session"))
		return
	}
	s.logger.Info("created session", "id", sess.ID, "params", c.Params())
	writeJSON(w, http.StatusCreated, newSessionResponse(sess, c))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, c, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess, c))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !session.ValidID(id) {
		s.writeError(w, r, errs.New(errs.ErrCodeSessionNotFound, "session %q not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req TopologyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *selection.Controller) error {
		return c.Configure(r.Context(), req.Params())
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *selection.Controller) error {
		var err error
		if req.Host != nil {
			_, err = c.SelectHost(r.Context(), *req.Host)
		} else {
			_, err = c.SelectAt(r.Context(), *req.X, *req.Y)
		}
		return err
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *selection.Controller) error {
		c.Reset(r.Context())
		return nil
	})
}

func (s *Server) handleRenderSession(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, c, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), graph.FromController(c), pipeline.Options{
		Formats: []string{format},
		Summary: r.URL.Query().Get("summary") == "true",
		Labels:  r.URL.Query().Get("labels") == "true",
		IDs:     r.URL.Query().Get("ids") == "true",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, format, "fattree-"+sess.ID[:8], artifacts[format])
}
