package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

// Jobs are never cached: apply reads the applicant list and must see the
// latest committed write.
type JobPostgreSQL struct {
	db *gorm.DB
}

func NewJobPostgreSQL(db *gorm.DB) repositories.JobRepository {
	return &JobPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (r *JobPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *JobPostgreSQL) Create(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	if job.ID == "" {
		job.ID = newID()
	}
	job.Skills = orEmpty(job.Skills)
	job.Applied = orEmpty(job.Applied)

	if err := r.getDB(tx).WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *JobPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := r.getDB(tx).WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("job", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (r *JobPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.JobFilters) ([]*models.Job, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Job{})
	if filters.RecruiterID != "" {
		query = query.Where("recruiter_id = ?", filters.RecruiterID)
	}

	var jobs []*models.Job
	if err := query.Order("created_at DESC, id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// UpdateApplied writes the whole applicant list back in one statement. There
// is no version check: a concurrent writer that read the same list earlier
// can overwrite this one.
func (r *JobPostgreSQL) UpdateApplied(ctx context.Context, tx *gorm.DB, id string, applied []string) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Update("applied", datatypes.JSONSlice[string](orEmpty(applied)))
	if result.Error != nil {
		return fmt.Errorf("failed to update applicants: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("job", id)
	}
	return nil
}

// Delete removes the job row, and the applicant list with it
func (r *JobPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := r.getDB(tx).WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("job", id)
	}
	return nil
}
