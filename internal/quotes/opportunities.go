package quotes

// Curated idea lists shown on the opportunities panel. Static for now;
// a screener can replace these once a fundamentals feed is wired in.
var (
	// LargeCapLeaders are established large caps worth tracking.
	LargeCapLeaders = []string{"NVDA", "MSFT", "GOOGL", "AAPL"}

	// EarlyOpportunities are smaller names with turnaround potential.
	EarlyOpportunities = []string{"HWM", "PFE", "AMC"}

	// DefaultWatchlist seeds a fresh watchlist.
	DefaultWatchlist = []string{"MSFT", "AAPL", "NVDA"}
)

// Opportunities groups the curated lists for the API.
type Opportunities struct {
	LargeCaps []string `json:"large_caps"`
	Early     []string `json:"early"`
}

// ListOpportunities returns copies of the curated lists.
func ListOpportunities() Opportunities {
	return Opportunities{
		LargeCaps: append([]string(nil), LargeCapLeaders...),
		Early:     append([]string(nil), EarlyOpportunities...),
	}
}
