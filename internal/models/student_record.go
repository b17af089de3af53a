package models

import "time"

// Student sub-records. Each row is owned by one student and is only ever
// deleted by that student.

type StudentSkill struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID   string    `json:"owner_id" gorm:"not null;size:255;index"`
	Skill     string    `json:"skill" gorm:"not null;size:100"`
	CreatedAt time.Time `json:"created_at"`
}

func (StudentSkill) TableName() string {
	return "student_skills"
}

type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID     string    `json:"owner_id" gorm:"not null;size:255;index"`
	Name        string    `json:"name" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`
	URL         *string   `json:"url,omitempty" gorm:"size:500"`
	StartDate   string    `json:"start_date" gorm:"size:20"`
	EndDate     string    `json:"end_date" gorm:"size:20"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string {
	return "student_projects"
}

type Internship struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID   string    `json:"owner_id" gorm:"not null;size:255;index"`
	Company   string    `json:"company" gorm:"not null;size:200"`
	Position  string    `json:"position" gorm:"not null;size:200"`
	URL       *string   `json:"url,omitempty" gorm:"size:500"`
	StartDate string    `json:"start_date" gorm:"size:20"`
	EndDate   string    `json:"end_date" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
}

func (Internship) TableName() string {
	return "student_internships"
}

type Education struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID         string    `json:"owner_id" gorm:"not null;size:255;index"`
	College         string    `json:"college" gorm:"not null;size:200"`
	Degree          string    `json:"degree" gorm:"not null;size:100"`
	Department      string    `json:"department" gorm:"size:100"`
	CurrentSemester int       `json:"current_semester"`
	CurrentYear     int       `json:"current_year"`
	StartDate       string    `json:"start_date" gorm:"size:20"`
	EndDate         string    `json:"end_date" gorm:"size:20"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Education) TableName() string {
	return "student_educations"
}

// RecordKind names a sub-record collection.
type RecordKind string

const (
	RecordSkill      RecordKind = "skill"
	RecordProject    RecordKind = "project"
	RecordInternship RecordKind = "internship"
	RecordEducation  RecordKind = "education"
)

// StudentProfile is the public view of a student: the user row plus every
// sub-record collection.
type StudentProfile struct {
	User        *User           `json:"user"`
	Skills      []*StudentSkill `json:"skills"`
	Projects    []*Project      `json:"projects"`
	Internships []*Internship   `json:"internships"`
	Educations  []*Education    `json:"educations"`
}

// ProjectListing is a project found by the cross-student scan, tagged with
// the student it belongs to.
type ProjectListing struct {
	*Project
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
}

// AllModels is used by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Job{},
		&StudentSkill{},
		&Project{},
		&Internship{},
		&Education{},
	}
}
