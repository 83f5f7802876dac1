package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/response"
)

type transcriptReader interface {
	CompletedRecords(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error)
	PerformanceSummary(ctx context.Context, studentID string) ([]models.SemesterSummary, error)
	Compute(ctx context.Context, records []models.CompletedCourse) ([]models.SemesterSummary, error)
}

// TranscriptHandler exposes completed-course history and SPI/CPI reports.
type TranscriptHandler struct {
	transcripts transcriptReader
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(transcripts transcriptReader) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// CompletedRecords godoc
// @Summary Completed course history for a student
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses/completed [get]
func (h *TranscriptHandler) CompletedRecords(c *gin.Context) {
	records, err := h.transcripts.CompletedRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Performance godoc
// @Summary Per-semester SPI and cumulative CPI for a student
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/performance [get]
func (h *TranscriptHandler) Performance(c *gin.Context) {
	summaries, err := h.transcripts.PerformanceSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// ComputeRequest carries an externally assembled record list.
type ComputeRequest struct {
	Records []models.CompletedCourse `json:"records" binding:"required"`
}

// Compute godoc
// @Summary Compute SPI/CPI over a posted record list
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body ComputeRequest true "Completed course records"
// @Success 200 {object} response.Envelope
// @Router /performance/compute [post]
func (h *TranscriptHandler) Compute(c *gin.Context) {
	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	summaries, err := h.transcripts.Compute(c.Request.Context(), req.Records)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}
