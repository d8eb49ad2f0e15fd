package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/chrisgioia64/financial-report-tools/dto"
)

var csvHeader = []string{"filename", "entity_name", "total_revenue", "page_number", "is_consolidated", "status"}

// WriteCSVReport writes one row per processed document. Documents where
// nothing matched keep status "success" with an empty total; failed documents
// carry the error in the status column.
func WriteCSVReport(path string, reports []dto.DocumentReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range reports {
		var total, page string
		if r.TotalRevenue != nil {
			total = strconv.FormatFloat(*r.TotalRevenue, 'f', -1, 64)
		}
		if r.SourcePage != nil {
			page = strconv.Itoa(*r.SourcePage)
		}
		status := r.Status
		if r.Status == dto.StatusError {
			status = "error: " + r.Error
		}
		record := []string{r.Filename, r.EntityName, total, page, strconv.FormatBool(r.Consolidated), status}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.Filename, err)
		}
	}

	w.Flush()
	return w.Error()
}
