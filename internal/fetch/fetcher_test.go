package fetch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
	"github.com/bobmcallan/etoro-extractor/internal/models"
)

const profileURL = "https://www.etoro.com/people/investor1"

func newTestFetcher(driver browser.Driver) *Fetcher {
	f := New(driver, config.NewDefaultConfig(), common.NewSilentLogger())
	f.InitialBackoff = time.Millisecond
	f.MaxBackoff = 2 * time.Millisecond
	f.CaptchaWait = time.Millisecond
	f.CaptchaChecks = 2
	return f
}

func TestFetch_ContentRendered_ReturnsSuccessWithDOM(t *testing.T) {
	driver := &browser.FakeDriver{
		PageHTML: "<html><div class='et-table-row clickable-row'></div></html>",
		Present:  map[string]bool{".et-table-row.clickable-row": true},
	}

	res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Status != models.FetchStatusSuccess {
		t.Errorf("status = %q, want success", res.Status)
	}
	if !strings.Contains(res.HTML, "et-table-row") {
		t.Errorf("result HTML missing captured DOM: %q", res.HTML)
	}
	if navs := driver.Navigations(); len(navs) != 1 || navs[0] != profileURL {
		t.Errorf("navigations = %v, want exactly [%s]", navs, profileURL)
	}
}

func TestFetch_BalanceLabelAloneCountsAsContent(t *testing.T) {
	driver := &browser.FakeDriver{
		PageHTML: "<html>balance</html>",
		Present: map[string]bool{
			"[automation-id='cd-public-portfolio-list-balance-label']": true,
		},
	}

	res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Status != models.FetchStatusSuccess {
		t.Errorf("status = %q, want success", res.Status)
	}
}

func TestFetch_PersistentCaptcha_ReportedAsOutcomeNotError(t *testing.T) {
	driver := &browser.FakeDriver{
		Present: map[string]bool{"iframe[src*='captcha']": true},
	}

	res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if err != nil {
		t.Fatalf("CAPTCHA must be a tagged result, got error: %v", err)
	}
	if res.Status != models.FetchStatusCaptchaDetected {
		t.Errorf("status = %q, want captcha_detected", res.Status)
	}
	if res.HTML != "" {
		t.Errorf("non-success result carried DOM: %q", res.HTML)
	}
}

func TestFetch_CaptchaClears_ResumesAndSucceeds(t *testing.T) {
	// First probe round sees the challenge (calls 0-2), after which it has
	// cleared and the portfolio rows are up.
	driver := &browser.FakeDriver{PageHTML: "<html>rows</html>"}
	driver.OnExists = func(selector string, call int) bool {
		if call < 3 {
			return selector == "iframe[src*='captcha']"
		}
		return selector == ".et-table-row.clickable-row"
	}

	res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Status != models.FetchStatusSuccess {
		t.Errorf("status = %q, want success after challenge cleared", res.Status)
	}
}

func TestFetch_NotFoundAndPrivatePhrases(t *testing.T) {
	cases := []struct {
		body string
		want models.FetchStatus
	}{
		{"Sorry, Profile Not Found.", models.FetchStatusProfileNotFound},
		{"This is a PRIVATE PROFILE.", models.FetchStatusProfilePrivate},
	}
	for _, c := range cases {
		driver := &browser.FakeDriver{BodyText: c.body}
		res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
		if err != nil {
			t.Fatalf("body %q: %v", c.body, err)
		}
		if res.Status != c.want {
			t.Errorf("body %q: status = %q, want %q", c.body, res.Status, c.want)
		}
	}
}

func TestFetch_PortfolioTabClickTriggersContent(t *testing.T) {
	driver := &browser.FakeDriver{
		PageHTML: "<html>rows</html>",
		Present:  map[string]bool{"a[href*='portfolio']": true},
		ClickEffects: map[string]string{
			"a[href*='portfolio']": ".et-table-row.clickable-row",
		},
	}

	res, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Status != models.FetchStatusSuccess {
		t.Errorf("status = %q, want success after tab click", res.Status)
	}
	if clicks := driver.Clicks(); len(clicks) != 1 {
		t.Errorf("clicks = %v, want exactly one tab click", clicks)
	}
}

func TestFetch_BudgetExpiry_ReturnsContentTimeout(t *testing.T) {
	driver := &browser.FakeDriver{} // nothing ever renders

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	_, err := newTestFetcher(driver).Fetch(ctx, profileURL)
	if !errors.Is(err, ErrContentTimeout) {
		t.Errorf("err = %v, want ErrContentTimeout", err)
	}
}

func TestFetch_NavigationError_ReturnsNavigationFailed(t *testing.T) {
	driver := &browser.FakeDriver{NavigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	_, err := newTestFetcher(driver).Fetch(context.Background(), profileURL)
	if !errors.Is(err, ErrNavigationFailed) {
		t.Errorf("err = %v, want ErrNavigationFailed", err)
	}
}
