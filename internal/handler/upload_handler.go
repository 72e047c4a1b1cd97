package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"accessgate/internal/logger"
	"accessgate/internal/middleware"
	"accessgate/internal/processor"
	"accessgate/internal/repository"
	"accessgate/internal/service"
)

// UploadHandler handles the synchronous upload endpoints.
type UploadHandler struct {
	uploader service.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader service.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload handles POST /bulk-upload/core/upload.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, ok := readSingleFile(c)
	if !ok {
		return
	}

	result, err := h.uploader.UploadDirect(c.Request.Context(), file, uploadOptions(c))
	if err != nil {
		respondPipelineError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadMultiple handles POST /bulk-upload/multiple/upload-multiple.
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	files, ok := readFiles(c)
	if !ok {
		return
	}

	result, err := h.uploader.UploadMultiple(c.Request.Context(), files, uploadOptions(c))
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable", "result": result})
			return
		}
		logger.Error("multi-file upload failed", "request_id", middleware.GetRequestID(c), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadWithProgress handles POST /bulk-upload/progress/upload-with-progress.
func (h *UploadHandler) UploadWithProgress(c *gin.Context) {
	file, ok := readSingleFile(c)
	if !ok {
		return
	}

	opts := uploadOptions(c)
	opts.JobID = c.PostForm("job_id")

	jobID, result, err := h.uploader.UploadWithProgress(c.Request.Context(), file, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		if jobID == "" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondPipelineError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "result": result})
}

// CancelProcessing handles POST /bulk-upload/cancellation/cancel/:jobId.
func (h *UploadHandler) CancelProcessing(c *gin.Context) {
	jobID := c.Param("jobId")
	if !h.uploader.CancelJob(jobID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found or already finished"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "cancelled": true})
}

// History handles GET /bulk-upload/history.
func (h *UploadHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	records, total, err := h.uploader.History(c.Request.Context(), middleware.GetUserID(c), page, pageSize)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			return
		}
		logger.Error("history lookup failed", "request_id", middleware.GetRequestID(c), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// uploadOptions reads the shared multipart flags.
func uploadOptions(c *gin.Context) service.UploadOptions {
	return service.UploadOptions{
		UserID:          middleware.GetUserID(c),
		IgnoreRowErrors: parseBool(c.PostForm("ignore_errors")),
		ContinueOnError: parseBool(c.PostForm("continue_on_error")),
	}
}

func parseBool(val string) bool {
	b, err := strconv.ParseBool(val)
	return err == nil && b
}

func readSingleFile(c *gin.Context) (service.UploadFile, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return service.UploadFile{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return service.UploadFile{}, false
	}
	return service.UploadFile{Name: header.Filename, Data: data}, true
}

func readFiles(c *gin.Context) ([]service.UploadFile, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return nil, false
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		data, err := readFormFile(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read " + header.Filename})
			return nil, false
		}
		files = append(files, service.UploadFile{Name: header.Filename, Data: data})
	}
	return files, true
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// respondPipelineError maps pipeline errors onto the HTTP surface: structural
// failures are client errors carrying the partial result, infrastructure
// failures are 503s, everything else is a 500.
func respondPipelineError(c *gin.Context, err error, result interface{}) {
	switch {
	case processor.IsStructural(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "result": result})
	case errors.Is(err, repository.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		logger.Error("upload failed", "request_id", middleware.GetRequestID(c), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
	}
}
