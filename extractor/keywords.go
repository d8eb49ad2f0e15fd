package extractor

import (
	"regexp"
	"strings"
)

// phraseExpr builds a pattern that matches the given keywords in order,
// tolerating the word splitting the extraction backend introduces:
// whitespace or a hyphen may appear anywhere inside a keyword
// ("ope rat ing", "non-operating"), and any text may separate consecutive
// keywords. A keyword is a sequence of required characters, not a literal
// token.
func phraseExpr(keywords ...string) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		chars := strings.Split(kw, "")
		for j, ch := range chars {
			chars[j] = regexp.QuoteMeta(ch)
		}
		parts[i] = strings.Join(chars, `[\s\-]*`)
	}
	return strings.Join(parts, `.*?`)
}

// phrase compiles a case-insensitive split-tolerant pattern.
func phrase(keywords ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + phraseExpr(keywords...))
}

// anyPhrase compiles an alternation of split-tolerant phrases. Each argument
// is one phrase given as its ordered keywords.
func anyPhrase(phrases ...[]string) *regexp.Regexp {
	alts := make([]string, len(phrases))
	for i, kws := range phrases {
		alts[i] = "(?:" + phraseExpr(kws...) + ")"
	}
	return regexp.MustCompile(`(?i)` + strings.Join(alts, "|"))
}

// Row and page patterns. These mirror the statement vocabulary of civic
// audit reports; all of them must survive mid-word splits.
var (
	// Section markers.
	reOperatingRevenue      = phrase("operating", "revenue")
	reNonOperating          = phrase("nonoperating")
	reNonOperatingIncome    = phrase("nonoperating", "income")
	reNonOperatingRevenue   = phrase("nonoperating", "revenue")
	reOperatingExpenses     = phrase("operating", "expenses:")
	reTotalOperatingRevenue = phrase("total", "operating", "revenue")

	// Rows that end a statement section.
	rePosition  = phrase("position")
	reBalance   = phrase("balance")
	reChangeNet = phrase("ange", "net") // catches "change in net ..." even when "change" is split

	// Summary rows skipped inside the non-operating section.
	reTotalWord = phrase("total")

	// Auto-entry fallback for statements whose non-operating header was
	// mis-extracted: these line items imply the section began.
	reAutoNonOperating = anyPhrase(
		[]string{"interest", "income"},
		[]string{"investment"},
		[]string{"gain"},
		[]string{"rental"},
	)

	// Structural detection of an unlabeled total row.
	largeNumberPattern = regexp.MustCompile(`\d[\d\s,]{6,}`)
	wordPattern        = regexp.MustCompile(`[a-zA-Z]{4,}`)
	descriptivePattern = regexp.MustCompile(`[a-zA-Z]{3,}`)
	reExpense          = phrase("expense")
	reOperatingLoss    = phrase("operat", "loss")

	// Consolidated/combining statement markers.
	reFederal            = phrase("federal")
	rePrograms           = phrase("programs")
	reEliminations       = phrase("eliminations")
	reCombiningSchedule  = phrase("combining", "schedule")
	reCombiningStatement = phrase("combining", "statement")

	// Per-fund detail statement markers.
	reHousingProgramsOnly = phrase("other", "housing", "programs", "only")
	reFederalProgramsOnly = phrase("federal", "programs", "only")
)
