package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetDashboard returns the landing view for the caller's role
// @Summary Get dashboard
// @Description Students get their profile, recommended and applied jobs; recruiters their jobs; admins the aggregate stats
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Unknown role"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting dashboard", "role", session.Role)

	dashboard, err := h.service.GetDashboard(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, dashboard)
}

// GetAdminStats returns platform totals. average_applicants_per_job is null
// and average_defined false when there are no jobs.
// @Summary Get admin statistics
// @Tags admin
// @Produce json
// @Success 200 {object} services.AdminStats
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /admin/stats [get]
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting admin stats")

	stats, err := h.service.GetAdminStats(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, stats)
}

func (h *DashboardHandler) GetJobApplications(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	jobID := c.Param("id")
	h.LogRequest(c, "Getting job applications", "job_id", jobID)

	res, err := h.service.GetJobApplications(c.Request.Context(), session, jobID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, res)
}
