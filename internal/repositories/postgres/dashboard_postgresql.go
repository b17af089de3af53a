package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dashboardRepository) CountUsersByRole(ctx context.Context, tx *gorm.DB) (map[models.UserRole]int64, error) {
	var rows []struct {
		Role  models.UserRole
		Count int64
	}

	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[models.UserRole]int64, len(models.AllRoles))
	for _, role := range models.AllRoles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) ListApplicantCounts(ctx context.Context, tx *gorm.DB) ([]repositories.JobApplicantCount, error) {
	var rows []repositories.JobApplicantCount

	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.Job{}).
		Select(`id AS job_id, title, company_name,
			CASE WHEN jsonb_typeof(applied) = 'array' THEN jsonb_array_length(applied) ELSE 0 END AS applicants`).
		Order("created_at DESC, id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to scan applicant counts: %w", err)
	}
	return rows, nil
}
