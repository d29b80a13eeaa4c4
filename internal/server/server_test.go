package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/VoxDroid/recipr/internal/publish"
)

func newTestServer(t *testing.T) (*httptest.Server, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := New(DefaultConfig(), publish.NewFSPublisher(fs, "/srv"))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, fs
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestPublishConflictOverHTTP(t *testing.T) {
	ts, fs := newTestServer(t)
	c := publish.NewCoordinator(publish.NewHTTPPublisher(ts.URL, nil))

	res, err := c.Publish(context.Background(), "tools", "run.bat", []string{"echo hi"})
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if !strings.HasSuffix(res.FilePath, "run.bat") {
		t.Fatalf("unexpected path %q", res.FilePath)
	}

	if _, err := c.Publish(context.Background(), "tools", "run.bat", []string{"echo bye"}); !errors.Is(err, publish.ErrFileExists) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if c.State() != publish.Conflict {
		t.Fatalf("expected Conflict, got %s", c.State())
	}
	res, err = c.ConfirmOverwrite(context.Background())
	if err != nil {
		t.Fatalf("ConfirmOverwrite: %v", err)
	}
	b, _ := afero.ReadFile(fs, res.FilePath)
	if string(b) != "echo bye" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestPublishRejectsBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Post(ts.URL+"/recipes/publish", "application/json", bytes.NewBufferString(`{"directoryName":" ","fileName":"a.bat"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/recipes/publish", "application/json", bytes.NewBufferString(`not json`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTraversalSurfacesAsFailure(t *testing.T) {
	ts, _ := newTestServer(t)
	c := publish.NewCoordinator(publish.NewHTTPPublisher(ts.URL, nil))
	_, err := c.Publish(context.Background(), "..", "run.bat", nil)
	var terr *publish.TransientError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransientError, got %v", err)
	}
	if c.State() != publish.Failed {
		t.Fatalf("expected Failed, got %s", c.State())
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"http://ui.local"}
	s := New(cfg, publish.NewFSPublisher(afero.NewMemMapFs(), "/srv"))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/recipes/publish", nil)
	req.Header.Set("Origin", "http://ui.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	_ = resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://ui.local" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
