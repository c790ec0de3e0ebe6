package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"job-listing/internal/app"
	"job-listing/internal/config"
	"job-listing/internal/viewer"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type sessionData struct {
	SessionID uuid.UUID   `json:"session_id"`
	View      viewer.View `json:"view"`
}

const upstreamPage = `{
	"page": 1,
	"results": [
		{"id": 101, "name": "Software Engineer", "company": {"name": "TechCorp"},
		 "categories": [{"name": "Engineering"}], "locations": [{"name": "Remote"}],
		 "type": "Full-time", "contents": "<p>Ship <em>features</em></p>"},
		{"id": 102, "name": "Marketing Manager", "company": {"name": "BrandCo"},
		 "categories": [{"name": "Marketing"}], "locations": [{"name": "New York, NY"}],
		 "type": "Full-time", "contents": "<p>Lead campaigns</p>"}
	]
}`

func newUpstream(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("page") != "1" {
			t.Errorf("expected page=1, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Has("category") || r.URL.Query().Has("search") {
			t.Errorf("filters must not be sent upstream: %q", r.URL.RawQuery)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(upstreamPage))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, upstreamURL string) *app.App {
	t.Helper()

	cfg := config.Config{
		App:     config.AppConfig{AppName: "job-listing", Environment: "test", HTTPPort: "0"},
		JobsAPI: config.JobsAPIConfig{BaseURL: upstreamURL},
		Viewer: config.ViewerConfig{
			SearchDebounce: 10 * time.Millisecond,
			SessionIdleTTL: time.Minute,
		},
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		t.Fatalf("container error: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("container start error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return app.New(c)
}

func call(t *testing.T, f *fiber.App, method, path string, body any) semanticResponse {
	t.Helper()

	var buf *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Test(req)
	if err != nil {
		t.Fatalf("%s %s request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("%s %s: missing X-Request-ID header", method, path)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s decode error: %v", method, path, err)
	}
	return sr
}

func waitLoaded(t *testing.T, a *app.App, id uuid.UUID) {
	t.Helper()
	s, err := a.Container.Sessions.Get(id)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not load")
	}
}

func TestIntegration_SessionFlow(t *testing.T) {
	var hits atomic.Int32
	upstream := newUpstream(t, http.StatusOK, &hits)
	a := newTestApp(t, upstream.URL)

	sr := call(t, a.Fiber, http.MethodPost, "/api/v1/sessions", nil)
	if sr.Status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (message=%s)", sr.Status, sr.Message)
	}
	var created sessionData
	if err := json.Unmarshal(sr.Data, &created); err != nil {
		t.Fatalf("create decode: %v", err)
	}
	waitLoaded(t, a, created.SessionID)
	base := "/api/v1/sessions/" + created.SessionID.String()

	var d sessionData
	sr = call(t, a.Fiber, http.MethodGet, base, nil)
	_ = json.Unmarshal(sr.Data, &d)
	if d.View.Header != "Showing all 2 jobs" {
		t.Fatalf("unexpected header %q", d.View.Header)
	}
	if d.View.Cards[0].ID != "101" || d.View.Cards[0].Company != "TechCorp" {
		t.Fatalf("unexpected first card %+v", d.View.Cards[0])
	}

	sr = call(t, a.Fiber, http.MethodPut, base+"/criteria", map[string]any{
		"search_query": "", "category": "all", "job_type": "all", "remote_only": true,
	})
	_ = json.Unmarshal(sr.Data, &d)
	if len(d.View.Cards) != 1 || d.View.Cards[0].Name != "Software Engineer" {
		t.Fatalf("remote filter: unexpected cards %+v", d.View.Cards)
	}

	sr = call(t, a.Fiber, http.MethodPost, base+"/jobs/101/toggle", nil)
	_ = json.Unmarshal(sr.Data, &d)
	if d.View.Cards[0].Description != "Ship features" {
		t.Fatalf("unexpected description %q", d.View.Cards[0].Description)
	}

	sr = call(t, a.Fiber, http.MethodDelete, base, nil)
	if sr.Status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", sr.Status)
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected exactly one upstream fetch, got %d", got)
	}
}

func TestIntegration_UpstreamErrorSurfacesInView(t *testing.T) {
	var hits atomic.Int32
	upstream := newUpstream(t, http.StatusInternalServerError, &hits)
	a := newTestApp(t, upstream.URL)

	sr := call(t, a.Fiber, http.MethodPost, "/api/v1/sessions", nil)
	var created sessionData
	if err := json.Unmarshal(sr.Data, &created); err != nil {
		t.Fatalf("create decode: %v", err)
	}
	waitLoaded(t, a, created.SessionID)

	var d sessionData
	sr = call(t, a.Fiber, http.MethodGet, "/api/v1/sessions/"+created.SessionID.String(), nil)
	_ = json.Unmarshal(sr.Data, &d)
	if d.View.Status != viewer.StatusError || d.View.Error != "Error: HTTP error! Status: 500" {
		t.Fatalf("unexpected view %+v", d.View)
	}

	sr = call(t, a.Fiber, http.MethodGet, "/api/v1/jobs", nil)
	if sr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", sr.Status)
	}
}
