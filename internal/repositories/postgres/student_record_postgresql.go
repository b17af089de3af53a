package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/cache"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

type StudentRecordPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentRecordPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRecordRepository {
	return &StudentRecordPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *StudentRecordPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *StudentRecordPostgreSQL) create(ctx context.Context, tx *gorm.DB, ownerID string, record interface{}) error {
	if err := r.getDB(tx).WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	cache.InvalidateProfile(ctx, r.cacheManager, ownerID)
	return nil
}

func (r *StudentRecordPostgreSQL) listByOwner(ctx context.Context, tx *gorm.DB, ownerID string, dest interface{}) error {
	if err := r.getDB(tx).WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(dest).Error; err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	return nil
}

// ===== SKILLS =====

func (r *StudentRecordPostgreSQL) AddSkill(ctx context.Context, tx *gorm.DB, skill *models.StudentSkill) error {
	if skill.ID == "" {
		skill.ID = newID()
	}
	return r.create(ctx, tx, skill.OwnerID, skill)
}

func (r *StudentRecordPostgreSQL) ListSkills(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.StudentSkill, error) {
	var skills []*models.StudentSkill
	if err := r.listByOwner(ctx, tx, ownerID, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// ===== PROJECTS =====

func (r *StudentRecordPostgreSQL) AddProject(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	if project.ID == "" {
		project.ID = newID()
	}
	return r.create(ctx, tx, project.OwnerID, project)
}

func (r *StudentRecordPostgreSQL) ListProjects(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.listByOwner(ctx, tx, ownerID, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *StudentRecordPostgreSQL) ListAllProjects(ctx context.Context, tx *gorm.DB) ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.getDB(tx).WithContext(ctx).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list all projects: %w", err)
	}
	return projects, nil
}

// ===== INTERNSHIPS =====

func (r *StudentRecordPostgreSQL) AddInternship(ctx context.Context, tx *gorm.DB, internship *models.Internship) error {
	if internship.ID == "" {
		internship.ID = newID()
	}
	return r.create(ctx, tx, internship.OwnerID, internship)
}

func (r *StudentRecordPostgreSQL) ListInternships(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Internship, error) {
	var internships []*models.Internship
	if err := r.listByOwner(ctx, tx, ownerID, &internships); err != nil {
		return nil, err
	}
	return internships, nil
}

// ===== EDUCATION =====

func (r *StudentRecordPostgreSQL) AddEducation(ctx context.Context, tx *gorm.DB, education *models.Education) error {
	if education.ID == "" {
		education.ID = newID()
	}
	return r.create(ctx, tx, education.OwnerID, education)
}

func (r *StudentRecordPostgreSQL) ListEducations(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Education, error) {
	var educations []*models.Education
	if err := r.listByOwner(ctx, tx, ownerID, &educations); err != nil {
		return nil, err
	}
	return educations, nil
}

// ===== OWNERSHIP / DELETE =====

func (r *StudentRecordPostgreSQL) GetOwner(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) (string, error) {
	model, err := recordModel(kind)
	if err != nil {
		return "", err
	}

	var owners []string
	if err := r.getDB(tx).WithContext(ctx).Model(model).
		Where("id = ?", id).
		Pluck("owner_id", &owners).Error; err != nil {
		return "", fmt.Errorf("failed to read %s owner: %w", kind, err)
	}
	if len(owners) == 0 {
		return "", notFound(string(kind), id)
	}
	return owners[0], nil
}

func (r *StudentRecordPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) error {
	owner, err := r.GetOwner(ctx, tx, kind, id)
	if err != nil {
		return err
	}

	model, _ := recordModel(kind)
	result := r.getDB(tx).WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(string(kind), id)
	}

	cache.InvalidateProfile(ctx, r.cacheManager, owner)
	return nil
}
