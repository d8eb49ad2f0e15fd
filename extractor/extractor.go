package extractor

import (
	"fmt"
	"strings"

	"github.com/chrisgioia64/financial-report-tools/dto"
)

// PageSource supplies the already-extracted pages of one document. The
// engine never touches raw document bytes.
type PageSource interface {
	Pages() ([]dto.Page, error)
}

// labelRunes caps the stored label length of a candidate.
const labelRunes = 60

// lookaheadRows is how far past a row the unlabeled-total heuristic looks
// for a confirming expense line.
const lookaheadRows = 3

// ExtractFromSource loads pages from the source and runs the extraction. A
// source error means the extraction could not run at all, as opposed to
// running and finding nothing (a result with nil totals).
func ExtractFromSource(src PageSource) (*dto.ExtractionResult, error) {
	pages, err := src.Pages()
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	return Extract(pages), nil
}

// Extract walks pages in ascending order, tables and rows in source order,
// and reconciles every candidate into one result. It is a pure function of
// its input; parallel calls on different documents are safe.
func Extract(pages []dto.Page) *dto.ExtractionResult {
	agg := newAggregator()
	for _, page := range pages {
		extractPage(page, agg)
	}
	return agg.finish()
}

func extractPage(page dto.Page, agg *aggregator) {
	if strings.TrimSpace(page.Text) == "" {
		return
	}
	pageHasOperating := reOperatingRevenue.MatchString(page.Text)
	pageHasNonOperating := reNonOperatingIncome.MatchString(page.Text) ||
		reNonOperatingRevenue.MatchString(page.Text)

	tracker := &sectionTracker{}
	if pageHasOperating && !agg.operatingFoundOn(page.Number) {
		tracker.section = SectionOperating
	}
	ctx := newConsolidationContext(page.Text)

	tables := page.Tables
	origin := dto.OriginTable
	if len(tables) == 0 {
		tables = []dto.Table{textTable(page.Text)}
		origin = dto.OriginText
	}

	for _, table := range tables {
		walkTable(table, page.Number, origin, pageHasNonOperating, tracker, ctx, agg)
	}
}

// walkTable classifies rows in order, carrying the section across rows. The
// tracker itself is carried across tables on the same page by the caller.
func walkTable(table dto.Table, pageNum int, origin dto.CandidateOrigin, pageHasNonOperating bool, tracker *sectionTracker, ctx consolidationContext, agg *aggregator) {
	texts := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		texts[i] = strings.TrimSpace(strings.Join(row.Cells, " "))
	}

	for i, row := range table.Rows {
		text := texts[i]
		if text == "" {
			continue
		}

		// Recover a non-operating section whose header line was lost in
		// extraction: a recognizable income item implies the section began.
		if tracker.section == SectionNone && pageHasNonOperating && reAutoNonOperating.MatchString(text) {
			tracker.section = SectionNonOperating
		}

		end := i + 1 + lookaheadRows
		if end > len(texts) {
			end = len(texts)
		}

		verdict := classifyRow(text, tracker.section, agg.operatingFoundOn(pageNum), texts[i+1:end])
		switch verdict {
		case VerdictTotalOperatingRevenue:
			value, consolidated, detail, ok := ctx.totalRowValue(row.Cells, texts[:i])
			if !ok || value <= minCandidateMagnitude {
				// Header-style total row with the value on a later row, or a
				// parenthesized loss line; the genuine positive total may
				// still follow, so the section stays open.
				tracker.section = SectionOperating
				continue
			}
			c := dto.Candidate{
				Value:        value,
				Page:         pageNum,
				Label:        truncateLabel(text),
				Origin:       origin,
				Consolidated: consolidated,
				Detail:       detail,
				Priority:     value,
			}
			if consolidated {
				c.Priority += consolidatedPriorityBoost
			}
			agg.recordOperating(c)
			tracker.closeOperating()
		case VerdictNonOperatingItem:
			value, ok := firstAmount(row.Cells)
			if !ok {
				continue
			}
			agg.recordNonOperating(dto.Candidate{
				Value:    value,
				Page:     pageNum,
				Label:    truncateLabel(text),
				Origin:   origin,
				Priority: value,
			})
		default:
			tracker.apply(verdict)
		}
	}
}

// textTable turns a page's plain text into one single-column table so pages
// whose table extraction yielded nothing can still be walked line by line.
func textTable(text string) dto.Table {
	lines := strings.Split(text, "\n")
	rows := make([]dto.Row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, dto.Row{Cells: []string{line}})
	}
	return dto.Table{Rows: rows}
}

func truncateLabel(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= labelRunes {
		return text
	}
	return string(runes[:labelRunes])
}
