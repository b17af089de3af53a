package services

import (
	"context"
	"encoding/json"
	"io"
	"math"

	"github.com/Gopikasanthosh455/placement-app/internal/export"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type RegisterRequest = validator.RegisterRequest
type SignInRequest = validator.SignInRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type CreateJobRequest = validator.JobCreateRequest
type SkillRequest = validator.SkillRequest
type ProjectRequest = validator.ProjectRequest
type InternshipRequest = validator.InternshipRequest
type EducationRequest = validator.EducationRequest

type StudentExportRow = export.StudentRow

type AuthResponse struct {
	*repositories.AuthToken
	User *models.User `json:"user"`
}

// JobMatch is a recommended job with the tags that matched
type JobMatch struct {
	*models.Job
	MatchedSkills []string `json:"matched_skills"`
}

type ApplyResponse struct {
	JobID   string       `json:"job_id"`
	Outcome ApplyOutcome `json:"outcome"`
}

type ShortlistResponse struct {
	JobID           string         `json:"job_id"`
	TotalApplicants int            `json:"total_applicants"`
	SampleSize      int            `json:"sample_size"`
	Candidates      []*models.User `json:"candidates"`
}

type JobApplicationsResponse struct {
	JobID      string   `json:"job_id"`
	Title      string   `json:"title"`
	Applicants int      `json:"applicants"`
	Applied    []string `json:"applied"`
}

// AdminStats is the aggregate view. AverageApplicantsPerJob is NaN when
// there are no jobs.
type AdminStats struct {
	TotalJobs               int64                            `json:"total_jobs"`
	TotalStudents           int64                            `json:"total_students"`
	TotalRecruiters         int64                            `json:"total_recruiters"`
	TotalAdmins             int64                            `json:"total_admins"`
	TotalApplications       int64                            `json:"total_applications"`
	AverageApplicantsPerJob float64                          `json:"-"`
	Jobs                    []repositories.JobApplicantCount `json:"jobs"`
}

// AverageDefined is false when there were no jobs to average over
func (s AdminStats) AverageDefined() bool {
	return !math.IsNaN(s.AverageApplicantsPerJob)
}

// MarshalJSON writes an undefined average as null
func (s AdminStats) MarshalJSON() ([]byte, error) {
	type alias AdminStats
	var avg *float64
	if s.AverageDefined() {
		v := s.AverageApplicantsPerJob
		avg = &v
	}
	return json.Marshal(struct {
		alias
		AverageApplicantsPerJob *float64 `json:"average_applicants_per_job"`
		AverageDefined          bool     `json:"average_defined"`
	}{
		alias:                   alias(s),
		AverageApplicantsPerJob: avg,
		AverageDefined:          avg != nil,
	})
}

// DashboardResponse is the role specific landing view; exactly one of the
// sections is set.
type DashboardResponse struct {
	Role      models.UserRole     `json:"role"`
	Student   *StudentDashboard   `json:"student,omitempty"`
	Recruiter *RecruiterDashboard `json:"recruiter,omitempty"`
	Admin     *AdminStats         `json:"admin,omitempty"`
}

type StudentDashboard struct {
	Profile     *models.StudentProfile `json:"profile"`
	Recommended []*JobMatch            `json:"recommended"`
	AppliedJobs []*models.Job          `json:"applied_jobs"`
}

type RecruiterDashboard struct {
	Jobs              []*models.Job `json:"jobs"`
	TotalApplications int           `json:"total_applications"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error)
	SignOut(ctx context.Context, session *models.Session) error
	Me(ctx context.Context, session *models.Session) (*models.User, error)
	ChangePassword(ctx context.Context, session *models.Session, req *ChangePasswordRequest) error
	// Authenticate resolves a bearer token, filling the role from the users
	// table when the token does not carry one
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

type ProfileService interface {
	GetMyProfile(ctx context.Context, session *models.Session) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, session *models.Session, req *ProfileUpdateRequest) (*models.User, error)
	GetPublicProfile(ctx context.Context, userID string) (*models.StudentProfile, error)

	AddSkill(ctx context.Context, session *models.Session, req *SkillRequest) (*models.StudentSkill, error)
	AddProject(ctx context.Context, session *models.Session, req *ProjectRequest) (*models.Project, error)
	AddInternship(ctx context.Context, session *models.Session, req *InternshipRequest) (*models.Internship, error)
	AddEducation(ctx context.Context, session *models.Session, req *EducationRequest) (*models.Education, error)
	DeleteRecord(ctx context.Context, session *models.Session, kind models.RecordKind, id string) error

	// ListProjects scans every student's projects, filtered by name when query is set
	ListProjects(ctx context.Context, query string) ([]*models.ProjectListing, error)
}

type JobService interface {
	Create(ctx context.Context, session *models.Session, req *CreateJobRequest) (*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	// List returns the corpus, filtered by skill tag when query is set
	List(ctx context.Context, query string) ([]*models.Job, error)
	Recommend(ctx context.Context, session *models.Session) ([]*JobMatch, error)
	ListByRecruiter(ctx context.Context, session *models.Session) ([]*models.Job, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, session *models.Session, jobID string) (ApplyOutcome, error)
	HasApplied(ctx context.Context, session *models.Session, jobID string) (bool, error)
	Applicants(ctx context.Context, jobID string) ([]string, error)
}

type ShortlistService interface {
	Shortlist(ctx context.Context, session *models.Session, jobID string) (*ShortlistResponse, error)
	// ExportAll builds one row per applicant that is a student, in applicant order
	ExportAll(ctx context.Context, applied []string) ([]StudentExportRow, error)
	ExportJob(ctx context.Context, session *models.Session, jobID string, w io.Writer) error
	DeleteJob(ctx context.Context, session *models.Session, jobID string) error
}

type DashboardService interface {
	GetAdminStats(ctx context.Context, session *models.Session) (*AdminStats, error)
	GetJobApplications(ctx context.Context, session *models.Session, jobID string) (*JobApplicationsResponse, error)
	GetDashboard(ctx context.Context, session *models.Session) (*DashboardResponse, error)
}

type ServiceManager interface {
	Auth() AuthService
	Profile() ProfileService
	Job() JobService
	Application() ApplicationService
	Shortlist() ShortlistService
	Dashboard() DashboardService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
