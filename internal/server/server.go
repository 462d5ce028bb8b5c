// Package server exposes the converter over HTTP.
//
// # Routes
//
//	POST   /v1/convert          convert an Open Exchange document (request body)
//	GET    /v1/models           list stored models
//	GET    /v1/models/{id}      fetch a stored model as SpecIF JSON
//	DELETE /v1/models/{id}      remove a stored model
//	GET    /v1/models/{id}/dot  render a stored model as DOT
//	GET    /healthz             liveness and build information
//
// POST /v1/convert accepts the query flags visible_only, strict, glossary
// and store. With store=true the converted model is also written to the
// model store and its location returned in the Location header.
//
// Errors are JSON objects {"error": "...", "code": "..."} with the status
// taken from [errors.HTTPStatus].
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/buildinfo"
	"github.com/matzehuels/archispec/pkg/config"
	"github.com/matzehuels/archispec/pkg/errors"
	specio "github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/observability"
	"github.com/matzehuels/archispec/pkg/pipeline"
	"github.com/matzehuels/archispec/pkg/render/nodelink"
	"github.com/matzehuels/archispec/pkg/store"
)

// WarningsHeader carries the number of items dropped during conversion.
const WarningsHeader = "X-Conversion-Warnings"

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	convert archimate.Options
	cfg     config.Server
	logger  *log.Logger
	started time.Time
}

// New creates a server. convert holds the base conversion options that
// request flags are applied to.
func New(runner *pipeline.Runner, st store.Store, convert archimate.Options, cfg config.Server, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = config.Default().Server.MaxUploadBytes
	}
	return &Server{
		runner:  runner,
		store:   st,
		convert: convert,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)
	if s.cfg.RequestTimeout.Duration > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout.Duration))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/models", s.handleListModels)
		r.Route("/models/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetModel)
			r.Delete("/", s.handleDeleteModel)
			r.Get("/dot", s.handleModelDOT)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type healthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Build:  buildinfo.Current(),
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts := s.convert
	q := r.URL.Query()
	flags := map[string]*bool{
		"visible_only": &opts.VisibleOnly,
		"strict":       &opts.StrictSchema,
		"glossary":     &opts.Glossary,
	}
	for name, dst := range flags {
		if err := queryBool(q.Get(name), dst); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name))
			return
		}
	}
	var persist bool
	if err := queryBool(q.Get("store"), &persist); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter store"))
		return
	}
	opts.FileName = q.Get("name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "document exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Code:  string(errors.ErrCodeInvalidInput),
			})
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return
	}

	res, err := s.runner.Convert(r.Context(), body, pipeline.Options{Convert: opts, Logger: s.logger})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if persist {
		rec, err := s.store.Put(r.Context(), res.Model, res.Source)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Location", "/v1/models/"+rec.ID)
	}

	data, err := specio.MarshalJSON(res.Model)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode model"))
		return
	}
	w.Header().Set(WarningsHeader, strconv.Itoa(len(res.Warnings)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetModel(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := specio.WriteJSON(m, w); err != nil {
		s.logger.Warn("write model", "id", m.ID, "err", err)
	}
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleModelDOT(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var includeShows bool
	if err := queryBool(r.URL.Query().Get("shows"), &includeShows); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter shows"))
		return
	}
	dot := nodelink.ToDOT(m, nodelink.Options{
		Diagram:      r.URL.Query().Get("diagram"),
		IncludeShows: includeShows,
	})
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, dot)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// queryBool parses an optional boolean query value into dst.
func queryBool(v string, dst *bool) error {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// observe reports requests and responses to the registered server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
