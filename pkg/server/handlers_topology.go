package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fattree/pkg/buildinfo"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// StatsResponse is the body of GET /api/v1/topology/stats.
type StatsResponse struct {
	Params fattree.Params `json:"params"`
	K      int            `json:"k"`
	Line   int            `json:"line"`
	fattree.Counts
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	p, err := s.queryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := fattree.Summarize(p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Params: p, K: p.K(), Line: p.Line(), Counts: c})
}

// layoutOptions builds pipeline options from the query string.
func (s *Server) layoutOptions(r *http.Request) (pipeline.Options, error) {
	p, err := s.queryParams(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	c, err := fattree.Summarize(p)
	if err != nil {
		return pipeline.Options{}, err
	}
	hosts, err := pipeline.ParseHosts(queryHosts(r), c.Hosts)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Depth: p.Depth, Width: p.Width, Hosts: hosts}, nil
}

func (s *Server) handleTopology(w http.ResponseWriter, r *http.Request) {
	opts, err := s.layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout, err := s.runner.BuildLayout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Summary = r.URL.Query().Get("summary") == "true"
	opts.Labels = r.URL.Query().Get("labels") == "true"
	opts.IDs = r.URL.Query().Get("ids") == "true"

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, format, "fattree", result.Artifacts[format])
}

func (s *Server) writeArtifact(w http.ResponseWriter, format, name string, data []byte) {
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", contentDisposition(name, pipeline.Extensions[format]))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
