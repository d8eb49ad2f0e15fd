package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisgioia64/financial-report-tools/dto"
)

func tableOf(rows ...[]string) dto.Table {
	t := dto.Table{}
	for _, cells := range rows {
		t.Rows = append(t.Rows, dto.Row{Cells: cells})
	}
	return t
}

func operatingStatementPage() dto.Page {
	return dto.Page{
		Number: 4,
		Text:   "Statement of Revenues and Expenses\nTotal operating revenues\nOperating expenses:",
		Tables: []dto.Table{tableOf(
			[]string{"Charges for services", "", "9,000,000"},
			[]string{"Total operating revenues", "", "12,345,678"},
			[]string{"Operating expenses:"},
			[]string{"Administrative", "", "3,000,000"},
		)},
	}
}

func TestExtractOperatingTotal(t *testing.T) {
	result := Extract([]dto.Page{operatingStatementPage()})

	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 12345678.0, *result.OperatingRevenue)
	require.NotNil(t, result.TotalRevenue)
	assert.Equal(t, 12345678.0, *result.TotalRevenue)
	require.NotNil(t, result.SourcePage)
	assert.Equal(t, 4, *result.SourcePage)
	assert.False(t, result.Consolidated)
	assert.Empty(t, result.NonOperatingItems)

	require.Len(t, result.AllMatches, 1)
	assert.Equal(t, dto.OriginTable, result.AllMatches[0].Origin)
	assert.Equal(t, "Total operating revenues 12,345,678", result.AllMatches[0].Label)
}

func TestExtractNonOperatingItems(t *testing.T) {
	page := dto.Page{
		Number: 5,
		Text:   "Nonoperating revenues (expenses)\nInterest income\nNet position",
		Tables: []dto.Table{tableOf(
			[]string{"Nonoperating revenues (expenses):"},
			[]string{"Interest income", "", "45,000"},
			[]string{"Loss on disposal", "", "(12,000)"},
			[]string{"Net position, end of year", "", "8,000,000"},
		)},
	}

	result := Extract([]dto.Page{page})

	assert.Nil(t, result.OperatingRevenue)
	require.Len(t, result.NonOperatingItems, 1)
	assert.Equal(t, 45000.0, result.NonOperatingItems[0].Value)
	require.NotNil(t, result.NonOperatingRevenue)
	assert.Equal(t, 45000.0, *result.NonOperatingRevenue)
	require.NotNil(t, result.TotalRevenue)
	assert.Equal(t, 45000.0, *result.TotalRevenue)

	// The negative item is kept for diagnostics but excluded from the sum,
	// and the position row contributes nothing.
	require.Len(t, result.AllMatches, 2)
	assert.Equal(t, -12000.0, result.AllMatches[1].Value)
}

func TestExtractNothingFound(t *testing.T) {
	page := dto.Page{
		Number: 1,
		Text:   "Independent Auditor's Report",
		Tables: []dto.Table{tableOf(
			[]string{"Management's discussion and analysis"},
			[]string{"Schedule", "Page"},
			[]string{"Total", "4,999"},
		)},
	}

	result := Extract([]dto.Page{page})

	assert.Nil(t, result.OperatingRevenue)
	assert.Nil(t, result.NonOperatingRevenue)
	assert.Nil(t, result.TotalRevenue)
	assert.Nil(t, result.SourcePage)
	assert.Empty(t, result.AllMatches)
}

func TestExtractCombinesOperatingAndNonOperating(t *testing.T) {
	pages := []dto.Page{
		operatingStatementPage(),
		{
			Number: 5,
			Text:   "Nonoperating revenues\nInterest income",
			Tables: []dto.Table{tableOf(
				[]string{"Nonoperating revenues:"},
				[]string{"Interest income", "", "45,000"},
			)},
		},
	}

	result := Extract(pages)

	require.NotNil(t, result.TotalRevenue)
	assert.Equal(t, 12345678.0+45000.0, *result.TotalRevenue)
}

func TestExtractConsolidatedDisplacesDetail(t *testing.T) {
	detail := dto.Page{
		Number: 6,
		Text:   "Federal programs only\nStatement of Revenues\nTotal operating revenues",
		Tables: []dto.Table{tableOf(
			[]string{"Operating revenues:"},
			[]string{"Total operating revenues", "", "5,000,000"},
		)},
	}
	consolidated := dto.Page{
		Number: 9,
		Text:   "Combining Schedule of Revenues and Expenses\nTotal operating revenues",
		Tables: []dto.Table{tableOf(
			[]string{"", "Federal Programs", "Other Programs", "Total"},
			[]string{"Total operating revenues", "2,000,000", "3,000,000", "5,000,000"},
		)},
	}

	result := Extract([]dto.Page{detail, consolidated})

	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 5000000.0, *result.OperatingRevenue)
	require.NotNil(t, result.SourcePage)
	assert.Equal(t, 9, *result.SourcePage)
	assert.True(t, result.Consolidated)

	// Both candidates are retained; only the consolidated one carries the
	// priority boost that made it authoritative over an equal detail value.
	require.Len(t, result.AllMatches, 2)
	assert.True(t, result.AllMatches[0].Detail)
	assert.Equal(t, 5000000.0, result.AllMatches[0].Priority)
	assert.True(t, result.AllMatches[1].Consolidated)
	assert.Equal(t, 5000000.0+consolidatedPriorityBoost, result.AllMatches[1].Priority)
}

func TestExtractIdempotent(t *testing.T) {
	pages := []dto.Page{operatingStatementPage()}

	first := Extract(pages)
	second := Extract(pages)

	assert.Equal(t, first, second)
}

func TestExtractOrderSensitive(t *testing.T) {
	header := []string{"Nonoperating revenues:"}
	item := []string{"Contributions from other governments", "", "50,000"}

	headerFirst := dto.Page{
		Number: 3,
		Text:   "Nonoperating revenues\nContributions",
		Tables: []dto.Table{tableOf(header, item)},
	}
	itemFirst := dto.Page{
		Number: 3,
		Text:   "Nonoperating revenues\nContributions",
		Tables: []dto.Table{tableOf(item, header)},
	}

	withHeader := Extract([]dto.Page{headerFirst})
	withoutHeader := Extract([]dto.Page{itemFirst})

	assert.Len(t, withHeader.NonOperatingItems, 1)
	assert.Empty(t, withoutHeader.NonOperatingItems)
}

func TestExtractAutoEntryRecoversLostHeader(t *testing.T) {
	// The non-operating header row was lost by table extraction, but the page
	// text still shows the section exists. The triggering item itself must be
	// captured.
	page := dto.Page{
		Number: 7,
		Text:   "Nonoperating income\nInterest income 45,000",
		Tables: []dto.Table{tableOf(
			[]string{"Interest income", "", "45,000"},
			[]string{"Rental income", "", "30,000"},
		)},
	}

	result := Extract([]dto.Page{page})

	require.Len(t, result.NonOperatingItems, 2)
	assert.Equal(t, 45000.0, result.NonOperatingItems[0].Value)
	assert.Equal(t, 30000.0, result.NonOperatingItems[1].Value)
}

func TestExtractTextOnlyPage(t *testing.T) {
	page := dto.Page{
		Number: 8,
		Text:   "Operating revenues:\nTotal operating revenues $ 2,500,000\nOperating expenses:",
	}

	result := Extract([]dto.Page{page})

	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 2500000.0, *result.OperatingRevenue)
	require.Len(t, result.AllMatches, 1)
	assert.Equal(t, dto.OriginText, result.AllMatches[0].Origin)
}

func TestExtractSkipsEmptyPages(t *testing.T) {
	pages := []dto.Page{
		{Number: 1, Text: "   "},
		{Number: 2},
		operatingStatementPage(),
	}

	result := Extract(pages)

	require.NotNil(t, result.SourcePage)
	assert.Equal(t, 4, *result.SourcePage)
}

func TestExtractSecondTotalOnSamePageIgnored(t *testing.T) {
	page := operatingStatementPage()
	page.Tables[0].Rows = append(page.Tables[0].Rows,
		dto.Row{Cells: []string{"Total operating revenues", "", "1,111,111"}})

	result := Extract([]dto.Page{page})

	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 12345678.0, *result.OperatingRevenue)
	assert.Len(t, result.AllMatches, 1)
}

func TestExtractNegativeTotalDoesNotBlockRealTotal(t *testing.T) {
	// A combining statement can show a parenthesized operating loss on a
	// total-labeled line before the genuine total. The loss must not be
	// recorded, and the positive total later on the same page must still win.
	page := dto.Page{
		Number: 4,
		Text:   "Total operating revenues\nOperating expenses:",
		Tables: []dto.Table{tableOf(
			[]string{"Total operating revenues (loss)", "", "(5,000,000)"},
			[]string{"Total operating revenues", "", "12,345,678"},
		)},
	}

	result := Extract([]dto.Page{page})

	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 12345678.0, *result.OperatingRevenue)
	require.NotNil(t, result.TotalRevenue)
	assert.Equal(t, 12345678.0, *result.TotalRevenue)
	require.Len(t, result.AllMatches, 1)
	assert.Equal(t, 12345678.0, result.AllMatches[0].Value)
}

func TestExtractNonPositiveTotalRejected(t *testing.T) {
	page := func(amount string) dto.Page {
		return dto.Page{
			Number: 4,
			Text:   "Total operating revenues",
			Tables: []dto.Table{tableOf(
				[]string{"Total operating revenues", "", amount},
			)},
		}
	}

	// A document whose only total line is a loss yields nothing, not a
	// negative total revenue.
	result := Extract([]dto.Page{page("(5,000,000)")})
	assert.Nil(t, result.OperatingRevenue)
	assert.Nil(t, result.TotalRevenue)
	assert.Empty(t, result.AllMatches)

	// Exactly 1,000 sits on the floor and is still rejected.
	result = Extract([]dto.Page{page("1,000")})
	assert.Nil(t, result.OperatingRevenue)

	result = Extract([]dto.Page{page("1,001")})
	require.NotNil(t, result.OperatingRevenue)
	assert.Equal(t, 1001.0, *result.OperatingRevenue)
}

func TestExtractLabelTruncated(t *testing.T) {
	long := "Total operating revenues including all charges for services and other miscellaneous operating receipts"
	page := dto.Page{
		Number: 2,
		Text:   "Total operating revenues",
		Tables: []dto.Table{tableOf([]string{long, "", "4,000,000"})},
	}

	result := Extract([]dto.Page{page})

	require.Len(t, result.AllMatches, 1)
	assert.Len(t, []rune(result.AllMatches[0].Label), 60)
}

type stubSource struct {
	pages []dto.Page
	err   error
}

func (s *stubSource) Pages() ([]dto.Page, error) { return s.pages, s.err }

func TestExtractFromSourceError(t *testing.T) {
	src := &stubSource{err: errors.New("file is corrupt")}

	result, err := ExtractFromSource(src)

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "file is corrupt")
}

func TestExtractFromSourceEmptyDocument(t *testing.T) {
	result, err := ExtractFromSource(&stubSource{})

	// Running and finding nothing is not an error.
	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.TotalRevenue)
}
