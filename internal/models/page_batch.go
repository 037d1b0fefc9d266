package models

// PageBatch is the set of movie links extracted from one listing page
type PageBatch struct {
	Page  int         // 1-indexed page number
	URL   string      // URL that was requested
	Links []MovieLink // deduplicated, in document order
}
