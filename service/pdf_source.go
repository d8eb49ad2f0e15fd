package service

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tsawler/tabula"

	"github.com/chrisgioia64/financial-report-tools/dto"
)

// PDFPageSource adapts a PDF file on disk into the page sequence the
// extraction engine consumes. Layout analysis comes from tabula; pages whose
// analyzed text comes back empty fall back to plain per-page text extraction,
// since scanned audit reports often defeat layout detection but still carry
// an embedded text layer.
type PDFPageSource struct {
	path string
}

func NewPDFPageSource(path string) *PDFPageSource {
	return &PDFPageSource{path: path}
}

func (s *PDFPageSource) Pages() ([]dto.Page, error) {
	if err := api.ValidateFile(s.path, nil); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", s.path, err)
	}

	doc, err := tabula.AnalyzeDocument(s.path)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", s.path, err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no pages in %s", s.path)
	}

	fallback := s.fallbackText()

	pages := make([]dto.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		page := dto.Page{
			Number: p.Number,
			Text:   p.ExtractText(),
		}
		if strings.TrimSpace(page.Text) == "" {
			page.Text = fallback[p.Number]
		}
		for _, t := range p.ExtractTables() {
			table := dto.Table{Rows: make([]dto.Row, 0, len(t.Rows))}
			for _, cells := range t.Rows {
				row := dto.Row{Cells: make([]string, 0, len(cells))}
				for _, cell := range cells {
					row.Cells = append(row.Cells, cell.Text)
				}
				table.Rows = append(table.Rows, row)
			}
			page.Tables = append(page.Tables, table)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// fallbackText extracts plain text per page number. Errors here are not
// fatal; a page missing from the map is simply skipped by the engine.
func (s *PDFPageSource) fallbackText() map[int]string {
	texts := make(map[int]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return texts
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return texts
	}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		var b strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		texts[i] = b.String()
	}
	return texts
}
