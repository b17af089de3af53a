package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

// JobFilters narrows job listings. Zero value lists everything.
type JobFilters struct {
	RecruiterID string
}

// JobRepository is the job store. The applicant list is part of the job row
// and is only ever written whole through UpdateApplied.
type JobRepository interface {
	Create(ctx context.Context, tx *gorm.DB, job *models.Job) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Job, error)
	List(ctx context.Context, tx *gorm.DB, filters JobFilters) ([]*models.Job, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// UpdateApplied overwrites the applicant list in a single write. It returns
	// ErrNotFound when the job no longer exists.
	UpdateApplied(ctx context.Context, tx *gorm.DB, id string, applied []string) error
}

// StudentRecordRepository holds the per-student sub-record collections
type StudentRecordRepository interface {
	AddSkill(ctx context.Context, tx *gorm.DB, skill *models.StudentSkill) error
	ListSkills(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.StudentSkill, error)

	AddProject(ctx context.Context, tx *gorm.DB, project *models.Project) error
	ListProjects(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Project, error)
	// ListAllProjects scans projects across every student
	ListAllProjects(ctx context.Context, tx *gorm.DB) ([]*models.Project, error)

	AddInternship(ctx context.Context, tx *gorm.DB, internship *models.Internship) error
	ListInternships(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Internship, error)

	AddEducation(ctx context.Context, tx *gorm.DB, education *models.Education) error
	ListEducations(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Education, error)

	// GetOwner returns the owner id of a record of the given kind
	GetOwner(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) (string, error)
	Delete(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) error
}
