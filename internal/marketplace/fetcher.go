package marketplace

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/billshinji/Vsix-Downloader/internal/model"
	"github.com/billshinji/Vsix-Downloader/internal/platform"
)

// maxDetailBytes caps how much of a non-200 response body is captured as
// failure detail.
const maxDetailBytes = 4 << 10

const userAgent = "vsix-downloader"

// Fetcher downloads marketplace packages into a destination directory.
type Fetcher struct {
	// Client issues the gallery request. Redirects to the CDN are followed
	// by the default policy. No timeout is set; callers bound the transfer
	// through the context they pass to Fetch.
	Client *http.Client

	// ResolveDir returns the directory packages are saved into.
	ResolveDir func() (string, error)

	mu    sync.Mutex
	locks map[string]*destLock
}

// destLock is a per-destination mutex with a holder/waiter count, so the
// entry can be dropped from the map once nobody needs it anymore.
type destLock struct {
	mu   sync.Mutex
	refs int
}

// NewFetcher creates a Fetcher saving into the user's Downloads directory.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:     &http.Client{},
		ResolveDir: platform.DownloadsDir,
	}
}

// NewFetcherWithDir creates a Fetcher saving into a fixed directory.
func NewFetcherWithDir(dir string) *Fetcher {
	f := NewFetcher()
	f.ResolveDir = func() (string, error) { return dir, nil }
	return f
}

// Fetch downloads the requested package and returns the absolute path of the
// saved file. The payload streams to a temporary file in the destination
// directory; any same-named file is removed before the temp file is moved
// into place. Every failure is returned as one of the model error kinds,
// never a bare error. Cancelling ctx aborts the transfer and leaves no
// partially moved destination file behind.
func (f *Fetcher) Fetch(ctx context.Context, req model.DownloadRequest) (string, error) {
	rawURL := DownloadURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &model.RequestError{URL: rawURL, Cause: err}
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(httpReq)
	if err != nil {
		return "", &model.TransferError{URL: rawURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.TransferError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	dir, err := f.ResolveDir()
	if err != nil {
		return "", &model.DestinationError{Cause: err}
	}

	// Temp file lives in the destination directory so the final rename
	// never crosses filesystems.
	tmp, err := os.CreateTemp(dir, "vsix-*.part")
	if err != nil {
		return "", &model.DestinationError{Cause: err}
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		if ctx.Err() != nil {
			return "", &model.TransferError{URL: rawURL, Cause: ctx.Err()}
		}
		return "", &model.ResponseError{URL: rawURL, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &model.WriteError{Path: tmpPath, Cause: err}
	}

	dest := filepath.Join(dir, PackageFilename(req))
	if abs, err := filepath.Abs(dest); err == nil {
		dest = abs
	}

	// Re-checked here so a cancellation during the transfer can never
	// remove the previously saved file.
	if ctx.Err() != nil {
		os.Remove(tmpPath)
		return "", &model.TransferError{URL: rawURL, Cause: ctx.Err()}
	}

	unlock := f.lockDest(dest)
	defer unlock()

	if _, err := os.Lstat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			os.Remove(tmpPath)
			return "", &model.WriteError{Path: dest, Cause: err}
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", &model.WriteError{Path: dest, Cause: err}
	}

	return dest, nil
}

// lockDest serializes the remove-then-move step per destination path, so two
// concurrent fetches deriving the same filename cannot interleave the replace.
// The map entry is dropped once the last holder or waiter releases it.
func (f *Fetcher) lockDest(dest string) func() {
	f.mu.Lock()
	if f.locks == nil {
		f.locks = make(map[string]*destLock)
	}
	l := f.locks[dest]
	if l == nil {
		l = &destLock{}
		f.locks[dest] = l
	}
	l.refs++
	f.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		f.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(f.locks, dest)
		}
		f.mu.Unlock()
	}
}

// readDetail captures up to maxDetailBytes of a non-200 body when it decodes
// as text. A read or decode failure never escalates the error.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxDetailBytes))
	if err != nil || len(data) == 0 {
		return ""
	}
	if !utf8.Valid(data) {
		return ""
	}
	return strings.TrimSpace(string(data))
}
