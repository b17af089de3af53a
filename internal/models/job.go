package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// Job is a posting owned by a recruiter. Skills and Applied are stored as
// JSONB arrays on the job row, so the applicant list lives and dies with it.
type Job struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	Title       string                      `json:"title" gorm:"not null;size:200"`
	CompanyName string                      `json:"company_name" gorm:"not null;size:200"`
	Details     string                      `json:"details" gorm:"type:text"`
	Industry    string                      `json:"industry" gorm:"size:100"`
	CTC         string                      `json:"ctc" gorm:"size:50"`
	Openings    int                         `json:"openings" gorm:"not null;default:0;check:openings >= 0"`
	Skills      datatypes.JSONSlice[string] `json:"skills" gorm:"type:jsonb"`
	DueDate     string                      `json:"due_date" gorm:"size:20"`
	RecruiterID string                      `json:"recruiter_id" gorm:"not null;size:255;index"`
	Applied     datatypes.JSONSlice[string] `json:"applied" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) HasApplicant(studentID string) bool {
	return slices.Contains(j.Applied, studentID)
}

func (j *Job) ApplicantCount() int {
	return len(j.Applied)
}

func (j *Job) OwnedBy(recruiterID string) bool {
	return recruiterID != "" && j.RecruiterID == recruiterID
}
