package browser

import (
	"os"
	"testing"

	"github.com/bobmcallan/etoro-extractor/internal/common"
)

func TestSessionRelease_TerminatesExactlyOnce(t *testing.T) {
	driver := &FakeDriver{}
	session := NewSessionFromDriver(driver, common.NewSilentLogger())

	session.Release()
	session.Release()
	session.Release()

	if got := driver.CloseCalls(); got != 1 {
		t.Errorf("Close called %d times, want exactly 1", got)
	}
}

func TestSessionDriver_ReturnsWrappedDriver(t *testing.T) {
	driver := &FakeDriver{CurrentURL: "about:blank"}
	session := NewSessionFromDriver(driver, common.NewSilentLogger())

	if session.Driver() != Driver(driver) {
		t.Error("Driver() did not return the wrapped driver")
	}
}

func TestResolveChromePath_ExplicitWins(t *testing.T) {
	if got := resolveChromePath("/opt/chrome/chrome"); got != "/opt/chrome/chrome" {
		t.Errorf("resolveChromePath = %q, want explicit path", got)
	}
}

func TestResolveChromePath_EnvFallback(t *testing.T) {
	t.Setenv("CHROME_PATH", "/custom/chrome")
	if got := resolveChromePath(""); got != "/custom/chrome" {
		t.Errorf("resolveChromePath = %q, want CHROME_PATH value", got)
	}
}

func TestResolveChromePath_ProbesWellKnownLocations(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	got := resolveChromePath("")
	if got == "" {
		return // nothing installed locally, chromedp lookup takes over
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("resolveChromePath returned %q which does not exist", got)
	}
}

func TestEscJS(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`iframe[src*='captcha']`, `iframe[src*=\'captcha\']`},
		{`plain`, `plain`},
		{`a\b`, `a\\b`},
	}
	for _, c := range cases {
		if got := escJS(c.in); got != c.want {
			t.Errorf("escJS(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
