package services

import (
	"context"
	"log/slog"
	"math"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

type dashboardService struct {
	repo    repositories.Repository
	db      *gorm.DB
	logger  *slog.Logger
	jobs    JobService
	profile ProfileService
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, jobs JobService, profile ProfileService) DashboardService {
	return &dashboardService{
		repo:    repo,
		db:      db,
		logger:  logger,
		jobs:    jobs,
		profile: profile,
	}
}

// AggregateStats is the pure part of the admin view. The average is NaN
// when there are no jobs.
func AggregateStats(roleCounts map[models.UserRole]int64, jobs []repositories.JobApplicantCount) AdminStats {
	stats := AdminStats{
		TotalJobs:       int64(len(jobs)),
		TotalStudents:   roleCounts[models.RoleStudent],
		TotalRecruiters: roleCounts[models.RoleRecruiter],
		TotalAdmins:     roleCounts[models.RoleAdmin],
		Jobs:            jobs,
	}
	for _, j := range jobs {
		stats.TotalApplications += int64(j.Applicants)
	}

	if stats.TotalJobs == 0 {
		stats.AverageApplicantsPerJob = math.NaN()
	} else {
		stats.AverageApplicantsPerJob = float64(stats.TotalApplications) / float64(stats.TotalJobs)
	}
	return stats
}

// GetAdminStats rescans both corpora on every call
func (s *dashboardService) GetAdminStats(ctx context.Context, session *models.Session) (*AdminStats, error) {
	if !session.HasRole(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.adminStats(ctx)
}

func (s *dashboardService) adminStats(ctx context.Context) (*AdminStats, error) {
	roleCounts, err := s.repo.Dashboard().CountUsersByRole(ctx, s.db)
	if err != nil {
		return nil, storeError(err, ErrNotFound, "count users")
	}
	jobs, err := s.repo.Dashboard().ListApplicantCounts(ctx, s.db)
	if err != nil {
		return nil, storeError(err, ErrNotFound, "count applicants")
	}

	stats := AggregateStats(roleCounts, jobs)
	s.logger.Debug("Admin stats computed", "jobs", stats.TotalJobs, "applications", stats.TotalApplications)
	return &stats, nil
}

func (s *dashboardService) GetJobApplications(ctx context.Context, session *models.Session, jobID string) (*JobApplicationsResponse, error) {
	if !session.HasRole(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "get job")
	}
	return &JobApplicationsResponse{
		JobID:      job.ID,
		Title:      job.Title,
		Applicants: job.ApplicantCount(),
		Applied:    append([]string{}, job.Applied...),
	}, nil
}

// ===== ROLE DISPATCH =====

type dashboardLoader func(ctx context.Context, session *models.Session) (*DashboardResponse, error)

// dashboardCases must cover every role; DispatchRole picks one
type dashboardCases struct {
	s *dashboardService
}

func (c dashboardCases) Student() dashboardLoader   { return c.s.studentDashboard }
func (c dashboardCases) Recruiter() dashboardLoader { return c.s.recruiterDashboard }
func (c dashboardCases) Admin() dashboardLoader     { return c.s.adminDashboard }

func (s *dashboardService) GetDashboard(ctx context.Context, session *models.Session) (*DashboardResponse, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthorized
	}
	load, err := models.DispatchRole[dashboardLoader](session.Role, dashboardCases{s: s})
	if err != nil {
		return nil, ErrForbidden
	}
	return load(ctx, session)
}

func (s *dashboardService) studentDashboard(ctx context.Context, session *models.Session) (*DashboardResponse, error) {
	profile, err := s.profile.GetMyProfile(ctx, session)
	if err != nil {
		return nil, err
	}
	recommended, err := s.jobs.Recommend(ctx, session)
	if err != nil {
		return nil, err
	}
	all, err := s.jobs.List(ctx, "")
	if err != nil {
		return nil, err
	}

	applied := make([]*models.Job, 0)
	for _, job := range all {
		if job.HasApplicant(session.UserID) {
			applied = append(applied, job)
		}
	}

	return &DashboardResponse{
		Role: models.RoleStudent,
		Student: &StudentDashboard{
			Profile:     profile,
			Recommended: recommended,
			AppliedJobs: applied,
		},
	}, nil
}

func (s *dashboardService) recruiterDashboard(ctx context.Context, session *models.Session) (*DashboardResponse, error) {
	jobs, err := s.jobs.ListByRecruiter(ctx, session)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, job := range jobs {
		total += job.ApplicantCount()
	}
	return &DashboardResponse{
		Role:      models.RoleRecruiter,
		Recruiter: &RecruiterDashboard{Jobs: jobs, TotalApplications: total},
	}, nil
}

func (s *dashboardService) adminDashboard(ctx context.Context, session *models.Session) (*DashboardResponse, error) {
	stats, err := s.adminStats(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardResponse{Role: models.RoleAdmin, Admin: stats}, nil
}
