package parse

// CSS selectors for the public portfolio markup. Like the fetch markers,
// these are the site's contract and change at the site's pace — keep them
// all here so a markup change never touches the row parsing logic.
const (
	selRow          = ".et-table-row.clickable-row"
	selName         = "[automation-id='cd-public-portfolio-table-item-title']"
	selNameFallback = ".et-bold-font.ellipsis"
	selDescription  = ".et-color-dark-grey.ellipsis"
	selCell         = ".et-table-cell"
	selCellValue    = ".et-font-weight-normal"
	selRateValue    = "[automation-id='buy-sell-button-rate-value']"
	selAvatar       = "img[automation-id='trade-item-avatar']"
	selLastUpdated  = "[sub-head] .et-color-dark-grey"
	selBalanceLabel = "[automation-id='cd-public-portfolio-list-balance-label']"
	selBalanceValue = ".et-font-s"
)

// lastUpdatedPrefix is stripped from the header date text; the remainder is
// kept verbatim in the source's own format.
const lastUpdatedPrefix = "Last updated on:"

// Cell positions within a portfolio row.
const (
	cellDirection = 0
	cellInvested  = 1
	cellProfit    = 2
	cellValue     = 3
	cellSell      = 4
	cellBuy       = 5
)
