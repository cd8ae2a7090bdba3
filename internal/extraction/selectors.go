package extraction

// Selectors for the live-scores listing. Multi-class selectors match the
// class attribute exactly, so a card that gains an extra class is skipped.
const (
	ListingCardSelector = `div[class="ds-px-4 ds-py-3"]`
	StatusSelector      = `span[class="ds-text-tight-xs ds-font-bold ds-uppercase ds-leading-5"]`
	TeamNameSelector    = `div[class="ds-flex ds-items-center ds-min-w-0 ds-mr-1"]`
	ScoreSelector       = `div[class="ds-text-compact-s ds-text-typo ds-text-right ds-whitespace-nowrap"]`
	ResultSelector      = `p[class="ds-text-tight-s ds-font-medium ds-truncate ds-text-typo"]`
	VenueDateSelector   = `span[class="ds-flex ds-items-center"]`
	LinkSelector        = `a[href]`
)

// Selectors and labels for match and scorecard pages
const (
	ScorecardLinkText  = "Scorecard"
	MetaLabelSelector  = "span"
	TossLabel          = "Toss"
	PlayerOfMatchLabel = "Player Of The Match"
	RunRateSelector    = "div.ds-text-tight-s"
	InningsPanel       = "div.ds-p-0"
	TableSelector      = "table"
	RowSelector        = "tr"
	CellSelector       = "td"
)

// Column layout of the scorecard tables
const (
	battingMinColumns = 8
	bowlingMinColumns = 6
)
