package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/testutil"
)

func TestPageURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		page    int
		want    string
		wantErr bool
	}{
		{"first page is unmodified", "https://yts.mx/browse-movies/0/all/animation/0/downloads/0/all", 1, "https://yts.mx/browse-movies/0/all/animation/0/downloads/0/all", false},
		{"second page", "https://yts.mx/browse-movies/0/all/animation/0/downloads/0/all", 2, "https://yts.mx/browse-movies/0/all/animation/0/downloads/0/all?page=2", false},
		{"existing query kept", "https://yts.mx/browse-movies?genre=animation", 3, "https://yts.mx/browse-movies?genre=animation&page=3", false},
		{"existing page replaced", "https://yts.mx/browse-movies?page=7", 4, "https://yts.mx/browse-movies?page=4", false},
		{"zero page", "https://yts.mx/browse-movies", 0, "", true},
		{"unparseable base", "http://[::1", 2, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageURL(tt.base, tt.page)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PageURL error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PageURL(%q, %d) = %q, want %q", tt.base, tt.page, got, tt.want)
			}
		})
	}
}

func TestClient_FetchListingPage(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/browse-movies" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testutil.GenerateListingHTML(
			[]string{server.URL + "/movies/foo-2020", server.URL + "/movies/bar-2021"},
			server.URL+"/browse-movies?page=2",
			"https://yts.mx/movies/elsewhere-2019",
		)))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	batch, err := c.FetchListingPage(context.Background(), server.URL+"/browse-movies", 1)
	if err != nil {
		t.Fatalf("FetchListingPage failed: %v", err)
	}

	want := []string{server.URL + "/movies/foo-2020", server.URL + "/movies/bar-2021"}
	if got := testutil.LinkStrings(batch.Links); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected links %v, got %v", want, got)
	}
	if batch.Page != 1 || batch.URL != server.URL+"/browse-movies" {
		t.Errorf("Unexpected batch metadata: %+v", batch)
	}
}

func TestClient_FetchListingPage_FollowsRedirect(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/browse":
			http.Redirect(w, r, "/browse-movies", http.StatusFound)
		case "/browse-movies":
			_, _ = w.Write([]byte(testutil.GenerateListingHTML([]string{server.URL + "/movies/foo-2020"})))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server)
	batch, err := c.FetchListingPage(context.Background(), server.URL+"/browse", 1)
	if err != nil {
		t.Fatalf("FetchListingPage failed: %v", err)
	}
	if len(batch.Links) != 1 {
		t.Errorf("Expected 1 link after redirect, got %d", len(batch.Links))
	}
}

func TestClient_FetchListingPage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server)
	_, err := c.FetchListingPage(context.Background(), server.URL+"/browse-movies", 2)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var transportErr *apperrors.ErrTransport
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected ErrTransport, got %T: %v", err, err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", transportErr.StatusCode)
	}
	if transportErr.URL != server.URL+"/browse-movies?page=2" {
		t.Errorf("Expected page 2 URL in error, got %q", transportErr.URL)
	}
}

func TestClient_FetchListingPage_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, server)
	base := server.URL + "/browse-movies"
	server.Close()

	_, err := c.FetchListingPage(context.Background(), base, 1)
	if apperrors.KindOf(err) != apperrors.KindTransport {
		t.Fatalf("Expected transport error, got %v", err)
	}
}

func TestClient_Pages_IsLazyAndSequential(t *testing.T) {
	var requests atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		_, _ = w.Write([]byte(testutil.GenerateListingHTML([]string{server.URL + "/movies/page-" + page})))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	batches, err := testutil.CollectPages(c.Pages(context.Background(), server.URL+"/browse-movies"), 3)
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("Expected 3 batches, got %d", len(batches))
	}
	for i, b := range batches {
		if b.Page != i+1 {
			t.Errorf("Batch %d has page %d", i, b.Page)
		}
	}
	if got := string(batches[2].Links[0]); got != server.URL+"/movies/page-3" {
		t.Errorf("Expected third page link, got %q", got)
	}
	if requests.Load() != 3 {
		t.Errorf("Expected exactly 3 requests, got %d", requests.Load())
	}
}

func TestClient_Pages_StopsOnCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request expected with a cancelled context")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, server)
	_, err := testutil.CollectPages(c.Pages(ctx, server.URL+"/browse-movies"), 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
