package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

const serviceName = "placement-service"

type HandlerManager struct {
	userHandler      *UserHandler
	studentHandler   *StudentHandler
	jobHandler       *JobHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *CasdoorAuthMiddleware
	health           func(ctx context.Context) error
	logger           utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		userHandler:    NewUserHandler(serviceManager.Auth(), serviceManager.Profile(), logger),
		studentHandler: NewStudentHandler(serviceManager.Profile(), logger),
		jobHandler: NewJobHandler(
			serviceManager.Job(),
			serviceManager.Application(),
			serviceManager.Shortlist(),
			logger,
		),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewCasdoorAuthMiddleware(serviceManager.Auth(), logger),
		health:           serviceManager.HealthCheck,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public
	v1.POST("/auth/register", hm.userHandler.Register)
	v1.POST("/auth/login", hm.userHandler.SignIn)

	api := v1.Group("")
	api.Use(hm.authMiddleware.AuthMiddleware())
	{
		student := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)
		recruiter := hm.authMiddleware.RequireRoleMiddleware(models.RoleRecruiter)
		admin := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
		recruiterOrAdmin := hm.authMiddleware.RequireRoleMiddleware(models.RoleRecruiter, models.RoleAdmin)

		auth := api.Group("/auth")
		{
			auth.POST("/logout", hm.userHandler.SignOut)
			auth.GET("/me", hm.userHandler.Me)
			auth.PUT("/password", hm.userHandler.ChangePassword)
		}

		api.GET("/dashboard", hm.dashboardHandler.GetDashboard)

		profiles := api.Group("/profiles")
		{
			profiles.GET("/me", hm.userHandler.GetMyProfile)
			profiles.PUT("/me", hm.userHandler.UpdateMyProfile)
			profiles.GET("/:id", hm.userHandler.GetProfile)
		}

		// Student sub-records
		students := api.Group("/students/me", student)
		{
			students.POST("/skills", hm.studentHandler.AddSkill)
			students.POST("/projects", hm.studentHandler.AddProject)
			students.POST("/internships", hm.studentHandler.AddInternship)
			students.POST("/educations", hm.studentHandler.AddEducation)
			students.DELETE("/:kind/:id", hm.studentHandler.DeleteRecord)
		}

		api.GET("/projects", hm.studentHandler.ListProjects)

		jobs := api.Group("/jobs")
		{
			jobs.GET("", hm.jobHandler.ListJobs)
			jobs.GET("/recommended", student, hm.jobHandler.Recommended)
			jobs.GET("/:id", hm.jobHandler.GetJob)
			jobs.POST("/:id/apply", student, hm.jobHandler.Apply)
			jobs.GET("/:id/applied", student, hm.jobHandler.HasApplied)

			// Recruiter tools; ownership is checked by the services
			jobs.POST("", recruiter, hm.jobHandler.CreateJob)
			jobs.GET("/:id/shortlist", recruiter, hm.jobHandler.Shortlist)
			jobs.GET("/:id/export", recruiterOrAdmin, hm.jobHandler.ExportApplicants)
			jobs.DELETE("/:id", recruiter, hm.jobHandler.DeleteJob)
		}

		api.GET("/recruiters/me/jobs", recruiter, hm.jobHandler.MyJobs)

		adminGroup := api.Group("/admin", admin)
		{
			adminGroup.GET("/stats", hm.dashboardHandler.GetAdminStats)
			adminGroup.GET("/jobs/:id/applications", hm.dashboardHandler.GetJobApplications)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := hm.health(ctx); err != nil {
		utils.FromContext(c, hm.logger).Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
