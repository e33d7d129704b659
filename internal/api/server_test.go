package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorbox/pkg/cache"
	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/observability"
	"github.com/matzehuels/anchorbox/pkg/pipeline"
)

const cardJSON = `{
  "name": "card",
  "width": "exact:320",
  "boxes": [
    {"id": "icon", "width": "48", "height": "48", "margin": {"left": "8", "top": "8"}},
    {"id": "label", "anchor": {"left": "icon"}, "margin": {"left": "12", "top": "8"}, "content": {"width": 120, "height": 20}}
  ]
}`

const cardTOML = `
width = "exact:320"

[[boxes]]
id     = "icon"
width  = "48"
height = "48"
`

const cyclicJSON = `{"boxes": [
  {"id": "a", "anchor": {"right": "b"}},
  {"id": "b", "anchor": {"left": "a"}}
]}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(New(runner, logger, opts...).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorBody {
	t.Helper()
	var body map[string]ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/layout", "application/json", cardJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(CacheHeader); got != "miss" {
		t.Errorf("%s = %q, want miss", CacheHeader, got)
	}
	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Width != 320 {
		t.Errorf("Width = %d, want 320", res.Width)
	}
	if pl, ok := res.Lookup("label"); !ok || pl.Rect.String() != "(68,8)-(188,28)" {
		t.Errorf("label = %+v", pl)
	}

	again := post(t, srv.URL+"/v1/layout", "application/json", cardJSON)
	if got := again.Header.Get(CacheHeader); got != "hit" {
		t.Errorf("second %s = %q, want hit", CacheHeader, got)
	}
	refreshed := post(t, srv.URL+"/v1/layout?refresh=true", "application/json", cardJSON)
	if got := refreshed.Header.Get(CacheHeader); got != "miss" {
		t.Errorf("refreshed %s = %q, want miss", CacheHeader, got)
	}
}

func TestLayoutTOML(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/layout", "application/toml; charset=utf-8", cardTOML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"cycle", "/v1/layout", "application/json", cyclicJSON, http.StatusUnprocessableEntity, "CYCLE_DETECTED"},
		{"missing ref", "/v1/check", "application/json", `{"boxes": [{"anchor": {"top": "ghost"}}]}`, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND"},
		{"duplicate", "/v1/layout", "application/json", `{"boxes": [{"id": "a"}, {"id": "a"}]}`, http.StatusUnprocessableEntity, "DUPLICATE_ID"},
		{"bad json", "/v1/layout", "application/json", `{`, http.StatusBadRequest, "INVALID_SCENE"},
		{"bad value", "/v1/layout", "application/json", `{"width": "wide"}`, http.StatusBadRequest, "INVALID_SCENE"},
		{"bad content type", "/v1/layout", "text/plain", cardJSON, http.StatusUnsupportedMediaType, "INVALID_FORMAT"},
		{"bad graph format", "/v1/graph?format=png", "application/json", cardJSON, http.StatusBadRequest, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Message)
			}
			if body.RequestID == "" || body.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request id = %q, header %q", body.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestStatusForMeasurerFailure(t *testing.T) {
	m := layout.MeasureFunc(func(*layout.Box, layout.Constraint, layout.Constraint) (layout.Size, error) {
		return layout.Size{}, fmt.Errorf("font not loaded")
	})
	_, err := layout.Layout(layout.Container{Boxes: []layout.Box{{ID: "label"}}}, m)
	if err == nil {
		t.Fatal("Layout() succeeded, want measurer error")
	}
	if got := statusFor(err); got != http.StatusInternalServerError {
		t.Errorf("statusFor() = %d, want 500", got)
	}

	cycle := errors.New(errors.ErrCodeCycleDetected, "a -> a")
	if got := statusFor(cycle); got != http.StatusUnprocessableEntity {
		t.Errorf("statusFor(cycle) = %d, want 422", got)
	}
}

func TestBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, WithMaxBodySize(16))
	resp := post(t, srv.URL+"/v1/layout", "application/json", cardJSON)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestCheck(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/check", "application/json", cardJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Valid || body.Boxes != 2 || len(body.Edges) != 1 {
		t.Errorf("check = %+v", body)
	}
	if e := body.Edges[0]; e.From != "label" || e.To != "icon" || e.Direction != layout.Left {
		t.Errorf("edge = %+v", e)
	}
}

func TestGraph(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/graph?format=dot", "application/json", cyclicJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), `"a" -> "b" [label="right"];`) {
		t.Errorf("graph body:\n%s", data)
	}

	svg := post(t, srv.URL+"/v1/graph", "application/json", cardJSON)
	if ct := svg.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("default Content-Type = %q, want image/svg+xml", ct)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing generated request id")
	}

	const id = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v2/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	get, err := http.Get(srv.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/layout status = %d, want 405", get.StatusCode)
	}
}

func TestStats(t *testing.T) {
	stats := observability.NewStats()
	observability.SetPipelineHooks(stats)
	observability.SetCacheHooks(stats)
	observability.SetHTTPHooks(stats)
	defer observability.Reset()

	srv := newTestServer(t, WithStats(stats))
	post(t, srv.URL+"/v1/layout", "application/json", cardJSON)
	post(t, srv.URL+"/v1/layout", "application/json", cardJSON)
	post(t, srv.URL+"/v1/layout", "application/json", cyclicJSON)

	resp, err := http.Get(srv.URL + "/v1/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap observability.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Layouts != 2 || snap.LayoutErrors != 1 || snap.CacheHits != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.ResponseStatus[http.StatusOK] != 2 || snap.ResponseStatus[http.StatusUnprocessableEntity] != 1 {
		t.Errorf("statuses = %v", snap.ResponseStatus)
	}
}
