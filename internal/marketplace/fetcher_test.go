package marketplace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// rewriteTransport redirects requests for the fixed gallery host to the
// local test server so the production URL construction stays untouched.
type rewriteTransport struct {
	host string
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.URL.Scheme = "http"
	r.URL.Host = t.host
	return http.DefaultTransport.RoundTrip(r)
}

func newTestFetcher(server *httptest.Server, dir string) *Fetcher {
	f := NewFetcherWithDir(dir)
	f.Client = &http.Client{Transport: rewriteTransport{host: strings.TrimPrefix(server.URL, "http://")}}
	return f
}

func TestFetchSuccess(t *testing.T) {
	payload := []byte("PK\x03\x04 fake vsix payload")
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)

	req := model.DownloadRequest{Publisher: "ms-vscode", Extension: "cpptools", Version: "1.20.5"}
	saved, err := fetcher.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	wantPath := "/_apis/public/gallery/publishers/ms-vscode/vsextensions/cpptools/1.20.5/vspackage"
	if gotPath != wantPath {
		t.Errorf("Expected request path '%s', got '%s'", wantPath, gotPath)
	}

	if saved != filepath.Join(dir, "ms-vscode.cpptools-1.20.5.vsix") {
		t.Errorf("Unexpected saved path '%s'", saved)
	}

	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("Expected saved file, got %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Saved contents do not match response body")
	}
}

func TestFetchPlatformQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("targetPlatform"); got != "darwin-arm64" {
			t.Errorf("Expected targetPlatform 'darwin-arm64', got '%s'", got)
		}
		w.Write([]byte("platform build"))
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)

	req := model.DownloadRequest{
		Publisher:      "ms-vscode",
		Extension:      "cpptools",
		Version:        "1.20.5",
		TargetPlatform: "darwin-arm64",
	}
	saved, err := fetcher.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Base(saved) != "ms-vscode.cpptools-1.20.5@darwin-arm64.vsix" {
		t.Errorf("Unexpected filename '%s'", filepath.Base(saved))
	}
}

func TestFetchReplacesExistingFile(t *testing.T) {
	body := []byte("first download")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)
	req := model.DownloadRequest{Publisher: "pub", Extension: "ext", Version: "1.0.0"}

	dest := filepath.Join(dir, "pub.ext-1.0.0.vsix")
	if err := os.WriteFile(dest, []byte("stale leftover content that is longer"), 0644); err != nil {
		t.Fatal(err)
	}

	saved, err := fetcher.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(saved)
	if string(data) != "first download" {
		t.Errorf("Expected replaced contents, got '%s'", data)
	}

	// Second fetch with a changed server response must leave only the
	// second download's content.
	body = []byte("second download")
	if _, err := fetcher.Fetch(context.Background(), req); err != nil {
		t.Fatalf("Expected no error on second fetch, got %v", err)
	}
	data, _ = os.ReadFile(dest)
	if string(data) != "second download" {
		t.Errorf("Expected second download's contents, got '%s'", data)
	}
}

func TestFetchFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cdn/blob", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cdn payload"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cdn/blob", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)

	saved, err := fetcher.Fetch(context.Background(), model.DownloadRequest{Publisher: "p", Extension: "e", Version: "1"})
	if err != nil {
		t.Fatalf("Expected redirect to be followed, got %v", err)
	}
	data, _ := os.ReadFile(saved)
	if string(data) != "cdn payload" {
		t.Errorf("Expected final response body, got '%s'", data)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("extension not found"))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server, t.TempDir())

	_, err := fetcher.Fetch(context.Background(), model.DownloadRequest{Publisher: "p", Extension: "e", Version: "9"})
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	kind, ok := model.KindOf(err)
	if !ok || kind != model.ErrNetwork {
		t.Errorf("Expected Network failure, got %v (%v)", kind, err)
	}

	var te *model.TransferError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransferError, got %T", err)
	}
	if te.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", te.StatusCode)
	}
	if te.Detail != "extension not found" {
		t.Errorf("Expected body as detail, got '%s'", te.Detail)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	fetcher := newTestFetcher(server, t.TempDir())
	server.Close() // nothing is listening anymore

	_, err := fetcher.Fetch(context.Background(), model.DownloadRequest{Publisher: "p", Extension: "e", Version: "1"})
	if err == nil {
		t.Fatal("Expected error for unreachable host")
	}

	var te *model.TransferError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransferError, got %T", err)
	}
	if te.StatusCode != 0 {
		t.Errorf("Expected no status code for transport failure, got %d", te.StatusCode)
	}
	if te.Cause == nil {
		t.Error("Expected underlying cause to be carried")
	}
}

func TestFetchDestinationUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server, "")
	fetcher.ResolveDir = func() (string, error) {
		return "", errors.New("no home directory")
	}

	_, err := fetcher.Fetch(context.Background(), model.DownloadRequest{Publisher: "p", Extension: "e", Version: "1"})
	kind, ok := model.KindOf(err)
	if !ok || kind != model.ErrDestinationUnavailable {
		t.Errorf("Expected DestinationUnavailable failure, got %v (%v)", kind, err)
	}
}

func TestFetchReleasesDestinationLock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server, t.TempDir())

	for _, version := range []string{"1", "2", "3"} {
		req := model.DownloadRequest{Publisher: "p", Extension: "e", Version: version}
		if _, err := fetcher.Fetch(context.Background(), req); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	fetcher.mu.Lock()
	retained := len(fetcher.locks)
	fetcher.mu.Unlock()
	if retained != 0 {
		t.Errorf("Expected no retained destination locks, got %d", retained)
	}
}

func TestFetchTruncatedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than the handler delivers so the client
		// hits an unexpected EOF while streaming the body.
		w.Header().Set("Content-Length", "4096")
		w.Write([]byte("short"))
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)

	_, err := fetcher.Fetch(context.Background(), model.DownloadRequest{Publisher: "p", Extension: "e", Version: "1"})
	if err == nil {
		t.Fatal("Expected error for truncated response body")
	}
	if kind, ok := model.KindOf(err); !ok || kind != model.ErrInvalidResponse {
		t.Errorf("Expected InvalidResponse failure, got %v (%v)", kind, err)
	}

	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".part") {
			t.Errorf("Leftover temp file '%s' after truncated download", entry.Name())
		}
	}
}

func TestFetchCancellation(t *testing.T) {
	firstByte := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		close(firstByte)
		<-r.Context().Done()
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := newTestFetcher(server, dir)

	// A previously saved file must survive the aborted transfer.
	dest := filepath.Join(dir, "p.e-1.vsix")
	if err := os.WriteFile(dest, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := fetcher.Fetch(ctx, model.DownloadRequest{Publisher: "p", Extension: "e", Version: "1"})
		done <- err
	}()

	<-firstByte
	cancel()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Fetch did not return after cancellation")
	}

	if err == nil {
		t.Fatal("Expected error after cancellation")
	}
	if kind, ok := model.KindOf(err); !ok || kind != model.ErrNetwork {
		t.Errorf("Expected Network failure carrying the cancellation, got %v (%v)", kind, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}

	data, readErr := os.ReadFile(dest)
	if readErr != nil || string(data) != "previous" {
		t.Errorf("Expected previously saved file to be untouched, got %q (%v)", data, readErr)
	}

	// No temp files may linger in the destination directory.
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".part") {
			t.Errorf("Leftover temp file '%s' after cancellation", entry.Name())
		}
	}
}
