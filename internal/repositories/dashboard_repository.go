package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

// DashboardRepository reads the raw numbers behind the admin view. Nothing
// here is cached.
type DashboardRepository interface {
	CountUsersByRole(ctx context.Context, tx *gorm.DB) (map[models.UserRole]int64, error)
	// ListApplicantCounts scans every job and reports its applicant list length
	ListApplicantCounts(ctx context.Context, tx *gorm.DB) ([]JobApplicantCount, error)
}

type JobApplicantCount struct {
	JobID       string `json:"job_id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Applicants  int    `json:"applicants"`
}
