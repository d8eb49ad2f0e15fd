package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern captures an optional currency sign, optional opening
// parenthesis, a digit group with comma or space thousands separators, and an
// optional closing parenthesis. Parentheses on both sides mean a negative.
var amountPattern = regexp.MustCompile(`\$?\s*(\()?\s*(\d[\d,\s]*)\s*(\))?`)

// minCandidateMagnitude filters out incidental numbers: row indexes,
// percentages, fiscal-year digits. Anything smaller is never revenue.
const minCandidateMagnitude = 1000

// cellAmount parses one cell. The second return reports whether the cell
// held a qualifying amount.
func cellAmount(cell string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	digits := strings.NewReplacer(",", "", " ", "").Replace(m[2])
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if m[1] == "(" && m[3] == ")" {
		v = -v
	}
	if v < minCandidateMagnitude && v > -minCandidateMagnitude {
		return 0, false
	}
	return v, true
}

// firstAmount scans a row's cells left to right and returns the first
// qualifying amount.
func firstAmount(cells []string) (float64, bool) {
	for _, cell := range cells {
		if v, ok := cellAmount(cell); ok {
			return v, true
		}
	}
	return 0, false
}

// allAmounts returns every qualifying amount in the row, in cell order.
// Consolidation scoring uses this to pick the rightmost (total) column.
func allAmounts(cells []string) []float64 {
	var vals []float64
	for _, cell := range cells {
		if v, ok := cellAmount(cell); ok {
			vals = append(vals, v)
		}
	}
	return vals
}
