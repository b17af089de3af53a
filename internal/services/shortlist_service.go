package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/export"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/shortlist"
)

type shortlistService struct {
	repo          repositories.Repository
	db            *gorm.DB
	sampler       *shortlist.Sampler
	publicBaseURL string
	logger        *slog.Logger
}

func NewShortlistService(repo repositories.Repository, db *gorm.DB, sampler *shortlist.Sampler, publicBaseURL string, logger *slog.Logger) ShortlistService {
	return &shortlistService{
		repo:          repo,
		db:            db,
		sampler:       sampler,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// ProfileURL is the public page of a student
func ProfileURL(baseURL, studentID string) string {
	return baseURL + "/student/" + studentID
}

// ownedJob loads a job the session may manage. Admins may read any job when
// allowAdmin is set.
func (s *shortlistService) ownedJob(ctx context.Context, session *models.Session, jobID string, allowAdmin bool) (*models.Job, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthorized
	}
	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "get job")
	}
	if job.OwnedBy(session.UserID) || (allowAdmin && session.HasRole(models.RoleAdmin)) {
		return job, nil
	}
	return nil, ErrForbidden
}

// Shortlist draws a fresh random sample on every call
func (s *shortlistService) Shortlist(ctx context.Context, session *models.Session, jobID string) (*ShortlistResponse, error) {
	job, err := s.ownedJob(ctx, session, jobID, false)
	if err != nil {
		return nil, err
	}

	sample := s.sampler.Sample(job.Applied)
	candidates, err := s.repo.User().GetByIDs(ctx, sample)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "load candidates")
	}

	return &ShortlistResponse{
		JobID:           job.ID,
		TotalApplicants: job.ApplicantCount(),
		SampleSize:      s.sampler.Size(),
		Candidates:      candidates,
	}, nil
}

// ExportAll skips ids that no longer resolve and users that are not students
func (s *shortlistService) ExportAll(ctx context.Context, applied []string) ([]StudentExportRow, error) {
	users, err := s.repo.User().GetByIDs(ctx, applied)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "load applicants")
	}

	rows := make([]StudentExportRow, 0, len(users))
	for _, u := range users {
		if u.Role != models.RoleStudent {
			continue
		}
		rows = append(rows, export.StudentRow{
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			PhoneNumber: u.PhoneNumber,
			Email:       u.Email,
			Institution: u.Institution,
			ProfileURL:  ProfileURL(s.publicBaseURL, u.ID),
		})
	}
	return rows, nil
}

func (s *shortlistService) ExportJob(ctx context.Context, session *models.Session, jobID string, w io.Writer) error {
	job, err := s.ownedJob(ctx, session, jobID, true)
	if err != nil {
		return err
	}

	rows, err := s.ExportAll(ctx, job.Applied)
	if err != nil {
		return err
	}
	if err := export.WriteStudentSheet(w, rows); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("Applicants exported", "job_id", jobID, "rows", len(rows), "applicants", job.ApplicantCount())
	return nil
}

// DeleteJob removes the job row; its applicant list goes with it
func (s *shortlistService) DeleteJob(ctx context.Context, session *models.Session, jobID string) error {
	if _, err := s.ownedJob(ctx, session, jobID, false); err != nil {
		return err
	}
	if err := s.repo.Job().Delete(ctx, s.db, jobID); err != nil {
		return storeError(err, ErrJobNotFound, "delete job")
	}

	s.logger.Info("Job deleted", "job_id", jobID, "recruiter_id", session.UserID)
	return nil
}
