package extractor

// consolidatedPriorityBoost makes a consolidated total-column candidate
// outrank any unboosted detail figure of lesser or equal magnitude.
const consolidatedPriorityBoost = 1_000_000_000

// headerLookback is how many rows above a total row are searched for a
// combining-statement column header.
const headerLookback = 10

// consolidationContext carries the page-level presentation markers used to
// disambiguate a consolidated/combining total from a per-fund detail figure.
type consolidationContext struct {
	pageConsolidated bool
	pageDetail       bool
}

func newConsolidationContext(pageText string) consolidationContext {
	return consolidationContext{
		pageConsolidated: reCombiningSchedule.MatchString(pageText) ||
			reCombiningStatement.MatchString(pageText),
		pageDetail: reHousingProgramsOnly.MatchString(pageText) ||
			reFederalProgramsOnly.MatchString(pageText),
	}
}

// totalRowValue resolves the value of a total row. prior holds the joined
// texts of the rows above it in the same table, oldest first.
//
// A row with a single qualifying number needs no column disambiguation. With
// multiple numeric columns the row belongs to a multi-fund statement: when
// consolidated markers are present the rightmost number is the Total column
// and wins a priority boost; otherwise the leftmost number is taken. The
// detail flag records per-fund page phrasing for diagnostics; it never
// disqualifies a candidate.
func (c consolidationContext) totalRowValue(cells []string, prior []string) (value float64, consolidated, detail, ok bool) {
	vals := allAmounts(cells)
	if len(vals) == 0 {
		return 0, false, false, false
	}
	if len(vals) > 1 && (c.pageConsolidated || hasConsolidatedHeader(prior)) {
		return vals[len(vals)-1], true, false, true
	}
	return vals[0], false, c.pageDetail, true
}

// hasConsolidatedHeader looks back through the nearest rows for a column
// header naming "total" alongside fund or program columns.
func hasConsolidatedHeader(prior []string) bool {
	start := 0
	if len(prior) > headerLookback {
		start = len(prior) - headerLookback
	}
	for _, text := range prior[start:] {
		if !reTotalWord.MatchString(text) {
			continue
		}
		if reFederal.MatchString(text) || rePrograms.MatchString(text) || reEliminations.MatchString(text) {
			return true
		}
	}
	return false
}
