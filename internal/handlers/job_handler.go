package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/export"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

// JobHandler serves the job corpus, applications and the recruiter tools
type JobHandler struct {
	BaseHandler
	jobs         services.JobService
	applications services.ApplicationService
	shortlist    services.ShortlistService
}

func NewJobHandler(
	jobs services.JobService,
	applications services.ApplicationService,
	shortlist services.ShortlistService,
	logger utils.Logger,
) *JobHandler {
	return &JobHandler{
		BaseHandler:  NewBaseHandler(logger),
		jobs:         jobs,
		applications: applications,
		shortlist:    shortlist,
	}
}

// ===== JOB ENDPOINTS =====

// CreateJob posts a new job and announces it
// @Summary Create job
// @Description Skill tags are trimmed and lower-cased before they are stored
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body services.CreateJobRequest true "Job data"
// @Success 201 {object} models.Job
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.CreateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Creating job", "title", req.Title)

	job, err := h.jobs.Create(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, job)
}

// ListJobs returns every job, or those whose skill tags contain ?q=
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param q query string false "Skill filter"
// @Success 200 {array} models.Job
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, job)
}

func (h *JobHandler) Recommended(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	matches, err := h.jobs.Recommend(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, matches)
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListByRecruiter(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, jobs)
}

// ===== APPLICATION ENDPOINTS =====

// Apply records the caller as an applicant. Applying twice is not an error;
// the outcome says "already_applied".
// @Summary Apply to a job
// @Tags applications
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} services.ApplyResponse
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")
	h.LogRequest(c, "Applying to job", "job_id", jobID)

	outcome, err := h.applications.Apply(c.Request.Context(), session, jobID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, services.ApplyResponse{JobID: jobID, Outcome: outcome})
}

func (h *JobHandler) HasApplied(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")

	applied, err := h.applications.HasApplied(c.Request.Context(), session, jobID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"job_id": jobID, "applied": applied})
}

// ===== RECRUITER ENDPOINTS =====

// Shortlist draws a fresh random sample of applicants on every call
func (h *JobHandler) Shortlist(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")
	h.LogRequest(c, "Shortlisting applicants", "job_id", jobID)

	res, err := h.shortlist.Shortlist(c.Request.Context(), session, jobID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, res)
}

// ExportApplicants downloads every applicant of the job as a spreadsheet
// @Summary Export applicants
// @Tags jobs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Job ID"
// @Success 200 {file} file "selected_students.xlsx"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{id}/export [get]
func (h *JobHandler) ExportApplicants(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")
	h.LogRequest(c, "Exporting applicants", "job_id", jobID)

	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.shortlist.ExportJob(c.Request.Context(), session, jobID, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")
	h.LogRequest(c, "Deleting job", "job_id", jobID)

	if err := h.shortlist.DeleteJob(c.Request.Context(), session, jobID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if c.Request.Context().Err() == nil {
		c.Status(http.StatusNoContent)
	}
}
