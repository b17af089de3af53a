package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

// StudentHandler serves the student's own sub-records and the global
// project listing
type StudentHandler struct {
	BaseHandler
	profile services.ProfileService
}

func NewStudentHandler(profile services.ProfileService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		profile:     profile,
	}
}

// recordKinds maps the path segment to the record kind
var recordKinds = map[string]models.RecordKind{
	"skills":      models.RecordSkill,
	"projects":    models.RecordProject,
	"internships": models.RecordInternship,
	"educations":  models.RecordEducation,
}

// ===== STUDENT ENDPOINTS =====

func (h *StudentHandler) AddSkill(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.SkillRequest
	if !h.bindJSON(c, &req) {
		return
	}

	skill, err := h.profile.AddSkill(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, skill)
}

func (h *StudentHandler) AddProject(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.ProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.profile.AddProject(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, project)
}

func (h *StudentHandler) AddInternship(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.InternshipRequest
	if !h.bindJSON(c, &req) {
		return
	}

	internship, err := h.profile.AddInternship(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, internship)
}

func (h *StudentHandler) AddEducation(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.EducationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	education, err := h.profile.AddEducation(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, education)
}

// DeleteRecord removes one of the caller's sub-records
// @Summary Delete a skill, project, internship or education entry
// @Tags students
// @Param kind path string true "skills, projects, internships or educations"
// @Param id path string true "Record ID"
// @Success 204
// @Failure 403 {object} ErrorResponse "Record belongs to another student"
// @Failure 404 {object} ErrorResponse "Record not found"
// @Router /students/me/{kind}/{id} [delete]
func (h *StudentHandler) DeleteRecord(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	kind, known := recordKinds[c.Param("kind")]
	if !known {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Unknown record kind", Details: c.Param("kind")})
		return
	}
	id := c.Param("id")
	h.LogRequest(c, "Deleting record", "kind", kind, "record_id", id)

	if err := h.profile.DeleteRecord(c.Request.Context(), session, kind, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if c.Request.Context().Err() == nil {
		c.Status(http.StatusNoContent)
	}
}

// ListProjects scans every student's projects; ?q= filters by name
func (h *StudentHandler) ListProjects(c *gin.Context) {
	h.LogRequest(c, "Listing projects", "q", c.Query("q"))

	projects, err := h.profile.ListProjects(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, projects)
}
