package service

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chrisgioia64/financial-report-tools/config"
	"github.com/chrisgioia64/financial-report-tools/dto"
	"github.com/chrisgioia64/financial-report-tools/extractor"
)

// RevenueService runs the extraction engine against uploaded documents and
// tracks ZIP batch sessions. Sessions live in memory; the engine itself is
// stateless, so each document is an independent extraction.
type RevenueService struct {
	cfg *config.Config

	mu       sync.Mutex
	sessions map[string]*dto.BatchStatus
}

func NewRevenueService(cfg *config.Config) *RevenueService {
	return &RevenueService{
		cfg:      cfg,
		sessions: make(map[string]*dto.BatchStatus),
	}
}

// ExtractFromFile runs the full pipeline on one PDF. The entity name is the
// filename stem; it is provenance only, not a resolved legal name.
func (s *RevenueService) ExtractFromFile(path string) (*dto.ExtractionResult, error) {
	result, err := extractor.ExtractFromSource(NewPDFPageSource(path))
	if err != nil {
		return nil, err
	}
	result.EntityName = entityNameFromFilename(filepath.Base(path))
	return result, nil
}

// StartZipExtraction unpacks the archive, registers a session and processes
// the PDFs in the background. It returns the session ID and PDF count.
func (s *RevenueService) StartZipExtraction(zipPath string) (string, int, error) {
	pdfPaths, err := s.unpackZip(zipPath)
	if err != nil {
		return "", 0, err
	}
	if len(pdfPaths) == 0 {
		return "", 0, dto.ErrNoPDFsInArchive
	}

	sessionID := fmt.Sprintf("batch-%d", time.Now().UnixNano())
	s.mu.Lock()
	s.sessions[sessionID] = &dto.BatchStatus{
		Total:      len(pdfPaths),
		InProgress: true,
		Results:    []dto.DocumentReport{},
		Errors:     []dto.DocumentReport{},
	}
	s.mu.Unlock()

	go s.processPDFs(sessionID, pdfPaths)

	return sessionID, len(pdfPaths), nil
}

// processPDFs walks the batch one document at a time. The engine is
// sequential per document; batch concurrency stays here, one goroutine per
// session.
func (s *RevenueService) processPDFs(sessionID string, pdfPaths []string) {
	for i, path := range pdfPaths {
		name := filepath.Base(path)
		s.mu.Lock()
		status := s.sessions[sessionID]
		status.Current = i + 1
		status.CurrentFile = name
		s.mu.Unlock()

		log.Printf("[%s] extracting %d/%d: %s", sessionID, i+1, len(pdfPaths), name)
		report := s.extractReport(path)

		s.mu.Lock()
		if report.Status == dto.StatusSuccess {
			status.Results = append(status.Results, report)
		} else {
			status.Errors = append(status.Errors, report)
		}
		s.mu.Unlock()
	}

	csvName := sessionID + ".csv"
	csvPath := filepath.Join(s.cfg.UploadDir, csvName)

	s.mu.Lock()
	status := s.sessions[sessionID]
	all := append(append([]dto.DocumentReport{}, status.Results...), status.Errors...)
	s.mu.Unlock()

	if err := WriteCSVReport(csvPath, all); err != nil {
		log.Printf("[%s] failed to write CSV report: %v", sessionID, err)
		csvName = ""
	}

	s.mu.Lock()
	status.InProgress = false
	status.CurrentFile = ""
	if csvName != "" {
		status.CSVFilename = csvName
		status.CSVDownloadURL = "/api/v1/revenue/csv/" + csvName
	}
	s.mu.Unlock()

	log.Printf("[%s] batch complete: %d ok, %d failed", sessionID, len(status.Results), len(status.Errors))
}

func (s *RevenueService) extractReport(path string) dto.DocumentReport {
	name := filepath.Base(path)
	report := dto.DocumentReport{
		Filename:   name,
		EntityName: entityNameFromFilename(name),
	}

	result, err := s.ExtractFromFile(path)
	if err != nil {
		report.Status = dto.StatusError
		report.Error = err.Error()
		return report
	}

	report.Status = dto.StatusSuccess
	report.TotalRevenue = result.TotalRevenue
	report.SourcePage = result.SourcePage
	report.Consolidated = result.Consolidated
	if result.TotalRevenue != nil {
		report.TotalFormatted = FormatCurrency(*result.TotalRevenue)
	}
	return report
}

// Status returns a copy of the session state so callers never observe a
// partially updated struct.
func (s *RevenueService) Status(sessionID string) (*dto.BatchStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.sessions[sessionID]
	if !ok {
		return nil, dto.ErrSessionNotFound
	}
	cp := *status
	cp.Results = append([]dto.DocumentReport{}, status.Results...)
	cp.Errors = append([]dto.DocumentReport{}, status.Errors...)
	return &cp, nil
}

// CSVPath resolves a generated report filename inside the upload directory.
func (s *RevenueService) CSVPath(filename string) string {
	return filepath.Join(s.cfg.UploadDir, filepath.Base(filename))
}

// unpackZip extracts the archive's PDF entries into a session directory and
// returns their paths in archive order.
func (s *RevenueService) unpackZip(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	destDir, err := os.MkdirTemp(s.cfg.UploadDir, "zip-")
	if err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}

	var paths []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".pdf") {
			continue
		}
		// Flatten the archive layout; only the base name matters downstream.
		dest := filepath.Join(destDir, filepath.Base(f.Name))

		src, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}
		out, err := os.Create(dest)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("create %s: %w", dest, err)
		}
		if _, err := io.Copy(out, src); err != nil {
			out.Close()
			src.Close()
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		out.Close()
		src.Close()
		paths = append(paths, dest)
	}
	return paths, nil
}

// entityNameFromFilename turns "city_of_example_2023.pdf" into
// "city of example 2023".
func entityNameFromFilename(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.Join(strings.Fields(stem), " ")
}

// FormatCurrency renders a value as "$1,234,567" with comma grouping.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
