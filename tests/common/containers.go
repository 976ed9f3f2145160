package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// BrowserContainer wraps a containerized headless Chrome exposing the
// DevTools protocol. In manual mode (ETORO_TEST_CDP_URL set) no container
// runs and tests talk to the existing browser.
type BrowserContainer struct {
	container testcontainers.Container
	cdpURL    string
	manual    bool
}

// CDPURL returns the DevTools websocket URL for chromedp's remote allocator.
func (b *BrowserContainer) CDPURL() string {
	return b.cdpURL
}

// FixtureBaseURL returns the base URL under which the in-container browser
// can reach a fixture server listening on the given host port.
func (b *BrowserContainer) FixtureBaseURL(port int) string {
	if b.manual {
		return fmt.Sprintf("http://localhost:%d", port)
	}
	return fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, port)
}

// CollectLogs saves the browser container's stdout/stderr to dir/.
func (b *BrowserContainer) CollectLogs(dir string) {
	if b == nil || b.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reader, err := b.container.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return
	}
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "headless-shell.log"), logs, 0644)
}

// Cleanup terminates the container. Uses a fresh context in case the test
// context expired.
func (b *BrowserContainer) Cleanup() {
	if b == nil || b.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	b.container.Terminate(ctx)
}

// StartBrowser starts a headless-shell container and returns its CDP
// endpoint. hostPorts lists host-side ports (fixture servers) the browser
// must be able to reach from inside the container. Skips the test when no
// container runtime is available.
func StartBrowser(t *testing.T, hostPorts ...int) *BrowserContainer {
	t.Helper()

	if url := os.Getenv("ETORO_TEST_CDP_URL"); url != "" {
		return &BrowserContainer{cdpURL: url, manual: true}
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	cfg := LoadTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Browser.TimeoutSecs)*time.Second)
	defer cancel()

	opts := []testcontainers.ContainerCustomizer{
		testcontainers.WithExposedPorts("9222/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("9222/tcp").WithStartupTimeout(60 * time.Second),
		),
	}
	for _, port := range hostPorts {
		opts = append(opts, testcontainers.WithHostPortAccess(port))
	}

	ctr, err := testcontainers.Run(ctx, cfg.Browser.Image, opts...)
	if err != nil {
		t.Fatalf("start headless-shell container: %v", err)
	}

	mapped, err := ctr.MappedPort(ctx, "9222/tcp")
	if err != nil {
		ctr.Terminate(ctx)
		t.Fatalf("get mapped devtools port: %v", err)
	}
	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx)
		t.Fatalf("get container host: %v", err)
	}

	return &BrowserContainer{
		container: ctr,
		cdpURL:    fmt.Sprintf("ws://%s:%s/", host, mapped.Port()),
	}
}
