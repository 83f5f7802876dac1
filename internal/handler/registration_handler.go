package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/service"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/response"
)

type registrationWorkflow interface {
	Submit(ctx context.Context, req service.SubmitRegistrationRequest) (*models.RegistrationRequest, error)
	Approve(ctx context.Context, req service.ApproveRegistrationRequest) (*models.EnrollmentRecord, error)
	Reject(ctx context.Context, req service.RejectRegistrationRequest) (*models.RegistrationRequest, error)
	BulkApprove(ctx context.Context, req service.BulkApproveRequest) (*service.BulkApproveResult, error)
	ListPendingForStudent(ctx context.Context, studentID string, page, pageSize int) ([]models.RegistrationRequestDetail, *models.Pagination, error)
	ListPendingForFaculty(ctx context.Context, facultyID string, page, pageSize int) ([]models.RegistrationRequestDetail, *models.Pagination, error)
}

// RegistrationHandler exposes the course registration workflow endpoints.
type RegistrationHandler struct {
	workflow registrationWorkflow
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(workflow registrationWorkflow) *RegistrationHandler {
	return &RegistrationHandler{workflow: workflow}
}

// Submit godoc
// @Summary Submit a course registration request
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.SubmitRegistrationRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req service.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.workflow.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// ListPending godoc
// @Summary List pending registration requests
// @Tags Registrations
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param facultyId query string false "Filter by the faculty member's assigned courses"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registrations/pending [get]
func (h *RegistrationHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var (
		requests   []models.RegistrationRequestDetail
		pagination *models.Pagination
		err        error
	)
	switch {
	case c.Query("studentId") != "":
		requests, pagination, err = h.workflow.ListPendingForStudent(c.Request.Context(), c.Query("studentId"), page, size)
	case c.Query("facultyId") != "":
		requests, pagination, err = h.workflow.ListPendingForFaculty(c.Request.Context(), c.Query("facultyId"), page, size)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId or facultyId required"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Approve godoc
// @Summary Approve a pending registration request
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.ApproveRegistrationRequest true "Approval payload"
// @Success 200 {object} response.Envelope
// @Router /registrations/approve [post]
func (h *RegistrationHandler) Approve(c *gin.Context) {
	var req service.ApproveRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.workflow.Approve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Reject godoc
// @Summary Reject a pending registration request
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.RejectRegistrationRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Router /registrations/reject [post]
func (h *RegistrationHandler) Reject(c *gin.Context) {
	var req service.RejectRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.workflow.Reject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// BulkApprove godoc
// @Summary Approve pending requests for a list of students
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.BulkApproveRequest true "Bulk approval payload"
// @Success 200 {object} response.Envelope
// @Router /registrations/bulk-approve [post]
func (h *RegistrationHandler) BulkApprove(c *gin.Context) {
	var req service.BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.workflow.BulkApprove(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
