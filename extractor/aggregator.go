package extractor

import "github.com/chrisgioia64/financial-report-tools/dto"

// aggregator accumulates candidates across every page of one document and
// reconciles them into the final result.
type aggregator struct {
	operating *dto.Candidate
	items     []dto.Candidate
	all       []dto.Candidate
}

func newAggregator() *aggregator {
	return &aggregator{
		items: []dto.Candidate{},
		all:   []dto.Candidate{},
	}
}

// operatingFoundOn reports whether an operating total was already recorded on
// the given page. The per-page scope lets a consolidated statement later in
// the document still produce its candidate and displace an earlier detail
// figure by priority.
func (a *aggregator) operatingFoundOn(page int) bool {
	return a.operating != nil && a.operating.Page == page
}

// recordOperating keeps the first operating candidate and afterwards replaces
// it only when a later candidate carries a strictly higher priority.
func (a *aggregator) recordOperating(c dto.Candidate) {
	a.all = append(a.all, c)
	if a.operating == nil || c.Priority > a.operating.Priority {
		held := c
		a.operating = &held
	}
}

// recordNonOperating keeps every candidate for diagnostics but sums only
// positive items; parenthesized losses are recognized and excluded.
func (a *aggregator) recordNonOperating(c dto.Candidate) {
	a.all = append(a.all, c)
	if c.Value > 0 {
		a.items = append(a.items, c)
	}
}

// finish computes the derived totals. Absent figures stay nil so a document
// where nothing matched is distinguishable from one that summed to zero.
func (a *aggregator) finish() *dto.ExtractionResult {
	res := &dto.ExtractionResult{
		NonOperatingItems: a.items,
		AllMatches:        a.all,
	}
	if a.operating != nil {
		v := a.operating.Value
		p := a.operating.Page
		res.OperatingRevenue = &v
		res.SourcePage = &p
		res.Consolidated = a.operating.Consolidated
	}
	if len(a.items) > 0 {
		var sum float64
		for _, it := range a.items {
			sum += it.Value
		}
		res.NonOperatingRevenue = &sum
		if res.SourcePage == nil {
			p := a.items[0].Page
			res.SourcePage = &p
		}
	}
	switch {
	case res.OperatingRevenue != nil && res.NonOperatingRevenue != nil:
		total := *res.OperatingRevenue + *res.NonOperatingRevenue
		res.TotalRevenue = &total
	case res.OperatingRevenue != nil:
		total := *res.OperatingRevenue
		res.TotalRevenue = &total
	case res.NonOperatingRevenue != nil:
		total := *res.NonOperatingRevenue
		res.TotalRevenue = &total
	}
	return res
}
