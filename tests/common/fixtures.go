package common

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// FixtureServer serves canned profile pages over HTTP so integration tests
// can drive the real browser pipeline without touching the live site.
type FixtureServer struct {
	listener net.Listener
	server   *http.Server

	mu    sync.RWMutex
	pages map[string]string // request path -> HTML body
}

// StartFixtureServer starts an HTTP server on an ephemeral localhost port.
// Unregistered paths return 404 with a "Profile Not Found" body, matching
// how the site reports missing profiles.
func StartFixtureServer(t *testing.T) *FixtureServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen for fixture server: %v", err)
	}

	fs := &FixtureServer{
		listener: listener,
		pages:    make(map[string]string),
	}
	fs.server = &http.Server{Handler: fs}

	go fs.server.Serve(listener)
	t.Cleanup(func() { fs.server.Close() })

	return fs
}

// Port returns the host port the server is listening on.
func (f *FixtureServer) Port() int {
	return f.listener.Addr().(*net.TCPAddr).Port
}

// SetProfile registers the page served for a username's public profile.
func (f *FixtureServer) SetProfile(username, html string) {
	f.SetPage("/people/"+username, html)
}

// SetPage registers an arbitrary path.
func (f *FixtureServer) SetPage(path, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[path] = html
}

func (f *FixtureServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.RLock()
	html, ok := f.pages[r.URL.Path]
	f.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<html><body><h1>Profile Not Found</h1></body></html>")
		return
	}
	fmt.Fprint(w, html)
}

// LoadFixture reads a fixture file relative to the calling test's directory.
func LoadFixture(t *testing.T, elem ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(elem...))
	if err != nil {
		t.Fatalf("read fixture %s: %v", strings.Join(elem, "/"), err)
	}
	return string(data)
}
