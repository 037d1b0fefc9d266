package models

// StopReason explains why a crawl ended
type StopReason string

const (
	StopNoLinks    StopReason = "no_links"     // page failed or contained no movie links
	StopNoNewLinks StopReason = "no_new_links" // every link on the page was already seen
	StopMaxPages   StopReason = "max_pages"
	StopCancelled  StopReason = "cancelled"
)

// RunSummary aggregates what a pipeline run did
type RunSummary struct {
	Pages      int        `json:"pages"`
	Discovered int        `json:"discovered"`
	Downloaded int        `json:"downloaded"`
	Existing   int        `json:"existing"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	StopReason StopReason `json:"stopReason"`
}
