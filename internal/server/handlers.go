package server

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/export"
	"github.com/anthon-rodrigues/docprocessor/internal/pipeline"
	"github.com/anthon-rodrigues/docprocessor/internal/repository"
)

// DocumentHandler exposes the processing pipeline over HTTP.
type DocumentHandler struct {
	processor *pipeline.Processor
	store     repository.DocumentStore
	exporter  *export.Service
	uploadDir string
	log       *slog.Logger
}

func NewDocumentHandler(
	processor *pipeline.Processor,
	store repository.DocumentStore,
	exporter *export.Service,
	uploadDir string,
	log *slog.Logger,
) *DocumentHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentHandler{
		processor: processor,
		store:     store,
		exporter:  exporter,
		uploadDir: uploadDir,
		log:       log,
	}
}

// saveUpload validates and stores the multipart file under the upload
// directory, returning its sanitized file name.
func (h *DocumentHandler) saveUpload(c *gin.Context) (string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return "", false
	}
	name, ok := h.validateUpload(c, header)
	if !ok {
		return "", false
	}
	if err := c.SaveUploadedFile(header, filepath.Join(h.uploadDir, name)); err != nil {
		h.log.Error("upload.save.failed", "file_name", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return "", false
	}
	return name, true
}

func (h *DocumentHandler) validateUpload(c *gin.Context, header *multipart.FileHeader) (string, bool) {
	name := filepath.Base(header.Filename)
	if name == "." || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return "", false
	}
	ext := constants.NormalizeExt(filepath.Ext(name))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type: " + ext})
		return "", false
	}
	return name, true
}

// Upload stores a document file without processing it.
func (h *DocumentHandler) Upload(c *gin.Context) {
	name, ok := h.saveUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"file_name": name})
}

// Classify uploads a file and runs classification only.
func (h *DocumentHandler) Classify(c *gin.Context) {
	h.runUpload(c, constants.DepthClassify)
}

// Extract uploads a file and runs structured extraction only.
func (h *DocumentHandler) Extract(c *gin.Context) {
	h.runUpload(c, constants.DepthExtract)
}

// Process uploads a file and runs the full pipeline, persisting the
// result.
func (h *DocumentHandler) Process(c *gin.Context) {
	h.runUpload(c, constants.DepthAll)
}

func (h *DocumentHandler) runUpload(c *gin.Context, depth constants.Depth) {
	name, ok := h.saveUpload(c)
	if !ok {
		return
	}

	doc, err := h.processor.ProcessUpload(c.Request.Context(), h.uploadDir, name, depth)
	if err != nil {
		h.writeProcessError(c, err, doc)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type processPathRequest struct {
	FilePath string `json:"filePath" binding:"required"`
	Depth    string `json:"depth"`
}

// ProcessPath runs the pipeline over a file already on the server's
// filesystem, for drop-folder and batch setups.
func (h *DocumentHandler) ProcessPath(c *gin.Context) {
	var req processPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filePath is required"})
		return
	}
	depth, err := constants.ParseDepth(req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, procErr := h.processor.ProcessFile(c.Request.Context(), req.FilePath, depth)
	if procErr != nil {
		h.writeProcessError(c, procErr, doc)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// writeProcessError maps pipeline errors to HTTP status codes. A
// persistence failure still carries the computed document so the caller
// does not lose the result.
func (h *DocumentHandler) writeProcessError(c *gin.Context, err error, doc any) {
	switch {
	case errors.Is(err, common.ErrUnsupportedInput), errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrClassification):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "document": doc})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Recent lists the most recently processed documents.
func (h *DocumentHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	docs, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Get returns one processed document by ID.
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	doc, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Export streams an XLSX summary of recent documents.
func (h *DocumentHandler) Export(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	data, err := h.exporter.ExportDocumentsXLSX(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="documents.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DashboardStats returns document totals, average classifier
// confidence, and per-label counts.
func (h *DocumentHandler) DashboardStats(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DashboardAccuracy returns classifier confidence per upload date for
// the most recent documents.
func (h *DocumentHandler) DashboardAccuracy(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	points, err := h.store.AccuracyTrend(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": points})
}

// DashboardMetrics returns entity totals across stored documents.
func (h *DocumentHandler) DashboardMetrics(c *gin.Context) {
	metrics, err := h.store.ExtractedMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Health reports process and store liveness.
func (h *DocumentHandler) Health(c *gin.Context) {
	if err := h.store.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
