package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/hypertower/pkg/buildinfo"
	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	graphio "github.com/matzehuels/hypertower/pkg/io"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// CacheHeader reports whether a response came from the cache ("hit" or "miss").
const CacheHeader = "X-Cache"

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// LevelsResponse is the body of POST /v1/levels.
type LevelsResponse struct {
	GraphHash string `json:"graph_hash"`
	pipeline.LevelTable
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := parseOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	table, hit, err := s.runner.Levels(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	hash, err := pipeline.GraphHash(g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, LevelsResponse{GraphHash: hash, LevelTable: table})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := parseOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.Layout(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errs.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := parseOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	l, layoutHit, err := s.runner.Layout(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, renderHit, err := s.runner.Render(r.Context(), l, g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setCacheHeader(w, layoutHit && renderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// readGraph decodes the request body as a JSON graph.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*hypergraph.Hypergraph, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body")
	}
	return pipeline.Parse(pipeline.Input{Data: body, Format: graphio.FormatJSON})
}

// parseOptions reads pipeline options from query parameters.
func parseOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		VizType: q.Get("viz_type"),
		Style:   q.Get("style"),
		Title:   q.Get("title"),
	}

	var err error
	intParam := func(name string, dst *int) {
		if v := q.Get(name); v != "" && err == nil {
			if *dst, err = strconv.Atoi(v); err != nil {
				err = errs.New(errs.ErrCodeInvalidInput, "%s: not an integer: %q", name, v)
			}
		}
	}
	floatParam := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = errs.New(errs.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
			}
		}
	}
	boolParam := func(name string, dst *bool) {
		if v := q.Get(name); v != "" && err == nil {
			if *dst, err = strconv.ParseBool(v); err != nil {
				err = errs.New(errs.ErrCodeInvalidInput, "%s: not a boolean: %q", name, v)
			}
		}
	}

	intParam("max_depth", &opts.MaxDepth)
	floatParam("scale", &opts.Scale)
	boolParam("hide_labels", &opts.HideLabels)
	boolParam("font_labels", &opts.FontLabels)
	boolParam("embed_font", &opts.EmbedFont)
	boolParam("interactive", &opts.Interactive)
	boolParam("refresh", &opts.Refresh)

	if q.Has("origin_x") || q.Has("origin_y") {
		origin := pipeline.DefaultOrigin()
		floatParam("origin_x", &origin.X)
		floatParam("origin_y", &origin.Y)
		opts.Origin = &origin
	}
	if err != nil {
		return pipeline.Options{}, err
	}

	if opts.VizType != "" {
		if err := errs.ValidateVizType(opts.VizType); err != nil {
			return pipeline.Options{}, err
		}
	}
	if opts.Style != "" {
		if err := errs.ValidateStyle(opts.Style); err != nil {
			return pipeline.Options{}, err
		}
	}
	return opts, nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = errs.FromGraphError(err)
	code := errs.GetCode(err)
	writeJSON(w, errs.HTTPStatus(code), ErrorResponse{
		Code:      code,
		Message:   errs.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func notFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}
