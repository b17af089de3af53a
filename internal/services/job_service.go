package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/events"
	"github.com/Gopikasanthosh455/placement-app/internal/matching"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

type jobService struct {
	repo      repositories.Repository
	db        *gorm.DB
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewJobService(repo repositories.Repository, db *gorm.DB, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) JobService {
	return &jobService{
		repo:      repo,
		db:        db,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// NormalizeJobSkills lowercases and trims recruiter tags, dropping empties.
// Student skills are deliberately stored as typed.
func NormalizeJobSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if tag := strings.ToLower(strings.TrimSpace(skill)); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (s *jobService) Create(ctx context.Context, session *models.Session, req *CreateJobRequest) (*models.Job, error) {
	if !session.HasRole(models.RoleRecruiter) {
		return nil, ErrForbidden
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	job := &models.Job{
		Title:       strings.TrimSpace(req.Title),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Details:     req.Details,
		Industry:    req.Industry,
		CTC:         req.CTC,
		Openings:    req.Openings,
		Skills:      datatypes.JSONSlice[string](NormalizeJobSkills(req.Skills)),
		DueDate:     req.DueDate,
		RecruiterID: session.UserID,
	}

	if err := s.repo.Job().Create(ctx, s.db, job); err != nil {
		return nil, fmt.Errorf("%w: failed to create job: %w", ErrTransientStore, err)
	}

	s.logger.Info("Job created",
		"job_id", job.ID,
		"recruiter_id", job.RecruiterID,
		"skills", len(job.Skills))

	s.publishJobPosted(ctx, job)
	return job, nil
}

// publishJobPosted never fails the create; the poster is not told about
// notification problems
func (s *jobService) publishJobPosted(ctx context.Context, job *models.Job) {
	if s.publisher == nil {
		return
	}
	event, err := events.NewEvent(events.EventJobPosted, events.JobPostedData{
		JobID:       job.ID,
		Title:       job.Title,
		CompanyName: job.CompanyName,
		Openings:    job.Openings,
		DueDate:     job.DueDate,
		RecruiterID: job.RecruiterID,
	})
	if err != nil {
		s.logger.Error("Failed to build job posted event", "job_id", job.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error("Failed to publish job posted event", "job_id", job.ID, "error", err)
	}
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.Job().GetByID(ctx, s.db, id)
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "get job")
	}
	return job, nil
}

func (s *jobService) List(ctx context.Context, query string) ([]*models.Job, error) {
	jobs, err := s.repo.Job().List(ctx, s.db, repositories.JobFilters{})
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "list jobs")
	}
	return matching.SearchJobs(jobs, query), nil
}

func (s *jobService) Recommend(ctx context.Context, session *models.Session) ([]*JobMatch, error) {
	if !session.HasRole(models.RoleStudent) {
		return nil, ErrForbidden
	}

	skills, err := s.studentSkills(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.Job().List(ctx, s.db, repositories.JobFilters{})
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "list jobs")
	}

	return recommend(skills, jobs), nil
}

func (s *jobService) studentSkills(ctx context.Context, studentID string) ([]string, error) {
	records, err := s.repo.StudentRecord().ListSkills(ctx, s.db, studentID)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "list skills")
	}
	skills := make([]string, 0, len(records))
	for _, r := range records {
		skills = append(skills, r.Skill)
	}
	return skills, nil
}

func recommend(skills []string, jobs []*models.Job) []*JobMatch {
	matched := matching.RecommendJobs(skills, jobs)
	out := make([]*JobMatch, 0, len(matched))
	for _, job := range matched {
		out = append(out, &JobMatch{Job: job, MatchedSkills: matching.MatchedTags(skills, job)})
	}
	return out
}

func (s *jobService) ListByRecruiter(ctx context.Context, session *models.Session) ([]*models.Job, error) {
	if !session.HasRole(models.RoleRecruiter) {
		return nil, ErrForbidden
	}
	jobs, err := s.repo.Job().List(ctx, s.db, repositories.JobFilters{RecruiterID: session.UserID})
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "list recruiter jobs")
	}
	return jobs, nil
}
