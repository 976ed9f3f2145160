package fetch

// The selectors and phrases below are the site's anti-bot and structure
// contract — versioned by the website, not by us. Keep every marker in this
// file so a markup change never touches the state machine.

// contentMarkers indicate the portfolio has rendered. Any one suffices.
var contentMarkers = []string{
	".et-table-row.clickable-row",
	"[automation-id='cd-public-portfolio-list-balance-label']",
}

// captchaMarkers indicate an anti-automation challenge.
var captchaMarkers = []string{
	"iframe[src*='captcha']",
	".captcha",
	"#captcha",
	"[class*='captcha']",
}

// portfolioTabMarkers locate the portfolio tab/link on a profile page, most
// specific first. The tab must sometimes be clicked before rows render.
var portfolioTabMarkers = []string{
	"a[href*='portfolio']",
	"[data-etoro-automation-id='portfolio-tab']",
	"button[aria-label*='Portfolio']",
	".portfolio-tab",
	"a[automation-id*='portfolio']",
	".et-tab[href*='portfolio']",
}

// Page-text phrases for restricted profiles, matched case-insensitively.
const (
	notFoundPhrase = "profile not found"
	privatePhrase  = "private profile"
)
