package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/anchorbox/pkg/buildinfo"
	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/pipeline"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// CacheHeader reports "hit" or "miss" on cached endpoints.
const CacheHeader = "X-Cache"

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// CheckResponse is returned by /v1/check for a valid scene.
type CheckResponse struct {
	Valid bool          `json:"valid"`
	Boxes int           `json:"boxes"`
	Edges []layout.Edge `json:"edges"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.decodeScene(w, r)
	if !ok {
		return
	}
	opts := pipeline.Options{Refresh: queryBool(r, "refresh")}
	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.decodeScene(w, r)
	if !ok {
		return
	}
	if err := s.runner.Check(r.Context(), sc); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := sc.Container()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	edges, err := layout.Graph(c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if edges == nil {
		edges = []layout.Edge{}
	}
	writeJSON(w, http.StatusOK, CheckResponse{Valid: true, Boxes: len(c.Boxes), Edges: edges})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.decodeScene(w, r)
	if !ok {
		return
	}
	opts := pipeline.Options{
		GraphFormat: r.URL.Query().Get("format"),
		Detailed:    queryBool(r, "detailed"),
		Refresh:     queryBool(r, "refresh"),
	}
	opts.SetDefaults()
	data, hit, err := s.runner.GraphWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	contentType := "image/svg+xml"
	if opts.GraphFormat == pipeline.FormatDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

// decodeScene reads the request body as TOML or JSON depending on its
// content type. It writes the error response itself.
func (s *Server) decodeScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, bool) {
	format := scene.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			writeError(w, r, http.StatusUnsupportedMediaType, string(errors.ErrCodeInvalidFormat), "malformed content type")
			return nil, false
		}
		switch mt {
		case "application/json":
		case "application/toml", "text/toml":
			format = scene.FormatTOML
		default:
			writeError(w, r, http.StatusUnsupportedMediaType, string(errors.ErrCodeInvalidFormat),
				"unsupported content type "+mt+" (use application/json or application/toml)")
			return nil, false
		}
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	sc, err := scene.Decode(body, format)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	if sc.Name == "" {
		sc.Name = "scene"
	}
	return sc, true
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", requestIDFrom(r.Context()), "error", err)
		msg = "internal error"
	}
	writeError(w, r, status, code, msg)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidScene, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeReferenceNotFound, errors.ErrCodeCycleDetected,
		errors.ErrCodeDuplicateID, errors.ErrCodeInvalidMeasurement:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, map[string]ErrorBody{
		"error": {Code: code, Message: msg, RequestID: requestIDFrom(r.Context())},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
