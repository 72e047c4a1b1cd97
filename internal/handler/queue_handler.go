package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"accessgate/internal/queue"
	"accessgate/internal/service"
)

// QueueHandler handles the asynchronous upload endpoints.
type QueueHandler struct {
	uploader service.Uploader
	jobs     service.JobQueue
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(uploader service.Uploader, jobs service.JobQueue) *QueueHandler {
	return &QueueHandler{uploader: uploader, jobs: jobs}
}

// Upload handles POST /bulk-upload/queue/upload. The response is sent before
// any file is processed.
func (h *QueueHandler) Upload(c *gin.Context) {
	files, ok := readFiles(c)
	if !ok {
		return
	}

	result, err := h.uploader.UploadQueued(c.Request.Context(), files, uploadOptions(c))
	if err != nil {
		if errors.Is(err, queue.ErrNoFiles) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
			return
		}
		// Extension whitelist failures arrive here before anything is queued.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// Status handles GET /bulk-upload/queue/status/:jobId.
func (h *QueueHandler) Status(c *gin.Context) {
	job, ok := h.jobs.Status(c.Param("jobId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Cancel handles POST /bulk-upload/queue/cancel/:jobId.
func (h *QueueHandler) Cancel(c *gin.Context) {
	jobID := c.Param("jobId")
	if !h.jobs.Cancel(jobID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found or already finished"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "cancelled": true})
}
