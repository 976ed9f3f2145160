package browser

import (
	"context"
	"strings"
	"sync"
)

// FakeDriver is a scriptable in-memory Driver for tests. It records every
// navigation, click, and terminate call so tests can assert on resource
// handling, and its page state can change mid-run via hooks to simulate a
// dynamic site.
type FakeDriver struct {
	mu sync.Mutex

	// PageHTML is returned by HTML.
	PageHTML string
	// CurrentURL is returned by Location.
	CurrentURL string
	// BodyText backs BodyContains (matched case-insensitively).
	BodyText string
	// Present maps CSS selectors to their existence. Selectors not in the
	// map do not exist.
	Present map[string]bool

	// NavigateErr, when set, is returned by Navigate.
	NavigateErr error
	// OnExists, when set, overrides Present. call counts Exists invocations
	// from zero, letting tests script markers that appear or clear over time.
	OnExists func(selector string, call int) bool
	// ClickEffects maps a clicked selector to another selector that becomes
	// present as a result, simulating content that renders on interaction.
	ClickEffects map[string]string

	existsCalls int
	navigations []string
	clicks      []string
	closeCalls  int
}

func (f *FakeDriver) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigations = append(f.navigations, url)
	if f.NavigateErr != nil {
		return f.NavigateErr
	}
	f.CurrentURL = url
	return nil
}

func (f *FakeDriver) Location(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CurrentURL, nil
}

func (f *FakeDriver) Exists(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	call := f.existsCalls
	f.existsCalls++
	if f.OnExists != nil {
		return f.OnExists(selector, call), nil
	}
	return f.Present[selector], nil
}

func (f *FakeDriver) BodyContains(ctx context.Context, phrase string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Contains(strings.ToLower(f.BodyText), strings.ToLower(phrase)), nil
}

func (f *FakeDriver) Click(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks = append(f.clicks, selector)
	if appears, ok := f.ClickEffects[selector]; ok {
		if f.Present == nil {
			f.Present = map[string]bool{}
		}
		f.Present[appears] = true
	}
	return nil
}

func (f *FakeDriver) HTML(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PageHTML, nil
}

func (f *FakeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	return []byte("png"), nil
}

func (f *FakeDriver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return nil
}

// SetPresent updates a selector's existence mid-test.
func (f *FakeDriver) SetPresent(selector string, present bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Present == nil {
		f.Present = map[string]bool{}
	}
	f.Present[selector] = present
}

// CloseCalls returns how many times the process was terminated.
func (f *FakeDriver) CloseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

// Navigations returns the URLs navigated to, in order.
func (f *FakeDriver) Navigations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.navigations))
	copy(out, f.navigations)
	return out
}

// Clicks returns the selectors clicked, in order.
func (f *FakeDriver) Clicks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.clicks))
	copy(out, f.clicks)
	return out
}
