package extractor

// Verdict is the classification of one row.
type Verdict int

const (
	VerdictOrdinary Verdict = iota
	VerdictEnterOperating
	VerdictEnterNonOperating
	VerdictExitOperating
	VerdictPositionOrBalance
	VerdictTotalOperatingRevenue
	VerdictNonOperatingItem
)

func (v Verdict) String() string {
	switch v {
	case VerdictEnterOperating:
		return "enter-operating"
	case VerdictEnterNonOperating:
		return "enter-nonoperating"
	case VerdictExitOperating:
		return "exit-operating"
	case VerdictPositionOrBalance:
		return "position-or-balance"
	case VerdictTotalOperatingRevenue:
		return "total-operating-revenue"
	case VerdictNonOperatingItem:
		return "nonoperating-item"
	default:
		return "ordinary"
	}
}

// classifyRow decides what one row is, given its joined text, the current
// section, whether an operating total was already recorded, and the joined
// texts of up to the next three rows (for the unlabeled-total heuristic).
//
// A labeled "Total operating revenues" row doubles as an operating-section
// header, so the total verdict is checked first; otherwise the enter verdict
// would shadow it and the value would never be read.
func classifyRow(text string, section Section, operatingFound bool, following []string) Verdict {
	entersOperating := reOperatingRevenue.MatchString(text) && !reNonOperating.MatchString(text)

	if !operatingFound && (section == SectionOperating || entersOperating) {
		if reTotalOperatingRevenue.MatchString(text) {
			return VerdictTotalOperatingRevenue
		}
		if section == SectionOperating && isUnlabeledTotalRow(text, following) {
			return VerdictTotalOperatingRevenue
		}
	}
	if entersOperating {
		return VerdictEnterOperating
	}
	if reNonOperatingIncome.MatchString(text) || reNonOperatingRevenue.MatchString(text) {
		return VerdictEnterNonOperating
	}
	if reOperatingExpenses.MatchString(text) {
		return VerdictExitOperating
	}
	if rePosition.MatchString(text) || reBalance.MatchString(text) || reChangeNet.MatchString(text) {
		return VerdictPositionOrBalance
	}
	if section == SectionNonOperating && !isSummaryRow(text) && descriptivePattern.MatchString(text) {
		return VerdictNonOperatingItem
	}
	return VerdictOrdinary
}

// isSummaryRow reports whether a row inside the non-operating section is a
// subtotal or statement-closing line rather than an income item.
func isSummaryRow(text string) bool {
	return reTotalWord.MatchString(text) ||
		rePosition.MatchString(text) ||
		reBalance.MatchString(text) ||
		reChangeNet.MatchString(text)
}

// isUnlabeledTotalRow detects a total row whose label was lost in
// extraction: a large number with almost no surrounding words, confirmed by
// an expense or operating-loss line within the next three rows.
func isUnlabeledTotalRow(text string, following []string) bool {
	if !largeNumberPattern.MatchString(text) {
		return false
	}
	if len(wordPattern.FindAllString(text, -1)) > 1 {
		return false
	}
	for _, next := range following {
		if reExpense.MatchString(next) || reOperatingLoss.MatchString(next) {
			return true
		}
	}
	return false
}
