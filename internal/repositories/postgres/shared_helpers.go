package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

// newID generates ids for rows the store creates (addDoc semantics)
func newID() string {
	return uuid.NewString()
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, repositories.ErrNotFound)
}

// recordModel maps a sub-record kind onto its gorm model
func recordModel(kind models.RecordKind) (interface{}, error) {
	switch kind {
	case models.RecordSkill:
		return &models.StudentSkill{}, nil
	case models.RecordProject:
		return &models.Project{}, nil
	case models.RecordInternship:
		return &models.Internship{}, nil
	case models.RecordEducation:
		return &models.Education{}, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// orEmpty keeps JSONB arrays as [] instead of null
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
