package models

// CrawlState is the set of movie links seen so far plus the page being crawled.
// It is owned by a single pipeline run and only grows.
type CrawlState struct {
	Page int
	seen map[MovieLink]struct{}
}

// NewCrawlState returns an empty state positioned on page 1
func NewCrawlState() *CrawlState {
	return &CrawlState{
		Page: 1,
		seen: make(map[MovieLink]struct{}),
	}
}

// Seen reports whether the link was already merged into the state
func (s *CrawlState) Seen(link MovieLink) bool {
	_, ok := s.seen[link]
	return ok
}

// Len returns the number of distinct links seen
func (s *CrawlState) Len() int {
	return len(s.seen)
}

// Diff returns the links from batch that have not been seen yet, keeping batch order.
// Duplicates within batch are reported once.
func (s *CrawlState) Diff(batch []MovieLink) []MovieLink {
	fresh := make([]MovieLink, 0, len(batch))
	local := make(map[MovieLink]struct{}, len(batch))
	for _, link := range batch {
		if s.Seen(link) {
			continue
		}
		if _, dup := local[link]; dup {
			continue
		}
		local[link] = struct{}{}
		fresh = append(fresh, link)
	}
	return fresh
}

// Merge adds links to the seen set. Links are never removed.
func (s *CrawlState) Merge(links []MovieLink) {
	for _, link := range links {
		s.seen[link] = struct{}{}
	}
}

// Advance moves the state to the next listing page
func (s *CrawlState) Advance() {
	s.Page++
}
