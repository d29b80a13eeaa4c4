package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPPublisherBareConflictCode(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req WireRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if !req.Overwrite {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":"FILE_EXISTS"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"filePath":"/srv/tools/a.bat"}`))
	}))
	defer srv.Close()

	c := NewCoordinator(NewHTTPPublisher(srv.URL, srv.Client()))
	_, err := c.Publish(context.Background(), "tools", "a.bat", []string{"cls"})
	if !errors.Is(err, ErrFileExists) || c.State() != Conflict {
		t.Fatalf("expected conflict, got state=%s err=%v", c.State(), err)
	}
	res, err := c.ConfirmOverwrite(context.Background())
	if err != nil {
		t.Fatalf("ConfirmOverwrite: %v", err)
	}
	if res.FilePath != "/srv/tools/a.bat" || calls != 2 {
		t.Fatalf("unexpected result %+v after %d calls", res, calls)
	}
}

func TestHTTPPublisherStatusConflictWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewHTTPPublisher(srv.URL, srv.Client()).Publish(context.Background(), Request{DirectoryName: "d", FileName: "f"}, nil)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("expected ErrFileExists, got %v", err)
	}
}

func TestHTTPPublisherOtherErrorsKeepMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"disk full"}}`))
	}))
	defer srv.Close()

	_, err := NewHTTPPublisher(srv.URL, srv.Client()).Publish(context.Background(), Request{DirectoryName: "d", FileName: "f"}, nil)
	if err == nil || err.Error() != "disk full" || errors.Is(err, ErrFileExists) {
		t.Fatalf("expected verbatim server message, got %v", err)
	}
}

func TestHTTPPublisherStatusWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPPublisher(srv.URL, srv.Client()).Publish(context.Background(), Request{DirectoryName: "d", FileName: "f"}, nil)
	if err == nil || err.Error() != "publish failed: 502 Bad Gateway" {
		t.Fatalf("unexpected error %v", err)
	}
}
