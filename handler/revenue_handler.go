package handler

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chrisgioia64/financial-report-tools/config"
	"github.com/chrisgioia64/financial-report-tools/dto"
	"github.com/chrisgioia64/financial-report-tools/service"
)

type RevenueHandler struct {
	revenueService *service.RevenueService
	uploadDir      string
	maxUploadSize  int64
}

func NewRevenueHandler(revenueService *service.RevenueService, cfg *config.Config) *RevenueHandler {
	return &RevenueHandler{
		revenueService: revenueService,
		uploadDir:      cfg.UploadDir,
		maxUploadSize:  cfg.MaxUploadSize,
	}
}

// Analyze handles POST /api/v1/revenue/analyze: one PDF in, one
// ExtractionResult out.
func (h *RevenueHandler) Analyze(c *gin.Context) {
	path, ok := h.saveUpload(c, ".pdf")
	if !ok {
		return
	}
	defer os.Remove(path)

	log.Printf("Analyzing %s", filepath.Base(path))
	result, err := h.revenueService.ExtractFromFile(path)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to extract revenue", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtractBatch handles POST /api/v1/revenue/extract: a ZIP of PDFs starts a
// background session.
func (h *RevenueHandler) ExtractBatch(c *gin.Context) {
	path, ok := h.saveUpload(c, ".zip")
	if !ok {
		return
	}
	defer os.Remove(path)

	sessionID, total, err := h.revenueService.StartZipExtraction(path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dto.ErrNoPDFsInArchive) {
			status = http.StatusBadRequest
		}
		h.sendError(c, status, "Failed to start batch extraction", err)
		return
	}

	log.Printf("Started batch %s with %d files", sessionID, total)
	c.JSON(http.StatusAccepted, dto.BatchStartResponse{
		SessionID:  sessionID,
		TotalFiles: total,
	})
}

// Status handles GET /api/v1/revenue/status/:session_id.
func (h *RevenueHandler) Status(c *gin.Context) {
	sessionID := c.Param("session_id")

	status, err := h.revenueService.Status(sessionID)
	if err != nil {
		if errors.Is(err, dto.ErrSessionNotFound) {
			h.sendError(c, http.StatusNotFound, "Unknown session", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to read session status", err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// DownloadCSV handles GET /api/v1/revenue/csv/:filename.
func (h *RevenueHandler) DownloadCSV(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" || !strings.HasSuffix(filename, ".csv") {
		h.sendError(c, http.StatusBadRequest, "Invalid report filename", nil)
		return
	}

	path := h.revenueService.CSVPath(filename)
	if _, err := os.Stat(path); err != nil {
		h.sendError(c, http.StatusNotFound, "Report not found", err)
		return
	}

	c.FileAttachment(path, filename)
}

// saveUpload stores the "file" form upload in the upload directory and
// returns its path. Writes the error response itself on failure.
func (h *RevenueHandler) saveUpload(c *gin.Context, wantExt string) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return "", false
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		h.sendError(c, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit", nil)
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), wantExt) {
		h.sendError(c, http.StatusBadRequest, "Expected a "+wantExt+" upload", nil)
		return "", false
	}

	dest := filepath.Join(h.uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, dest); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return "", false
	}
	return dest, true
}

// sendError sends a structured error response
func (h *RevenueHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
