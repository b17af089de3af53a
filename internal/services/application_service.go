package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

// ===== APPLICATION STATE MACHINE =====

type ApplicationState int

const (
	StateNotApplied ApplicationState = iota
	StateApplied
)

type ApplicationEvent int

const (
	EventApply ApplicationEvent = iota
)

// ApplicationEffect is the store write the service must perform after a transition
type ApplicationEffect int

const (
	EffectNone ApplicationEffect = iota
	EffectAppendApplicant
)

// NextApplicationState is the whole (student, job) lifecycle. Applied is
// terminal: there is no withdraw event.
func NextApplicationState(state ApplicationState, event ApplicationEvent) (ApplicationState, ApplicationEffect) {
	switch {
	case state == StateNotApplied && event == EventApply:
		return StateApplied, EffectAppendApplicant
	default:
		return state, EffectNone
	}
}

// ApplicationStateOf reads the current state of a student against a job
func ApplicationStateOf(job *models.Job, studentID string) ApplicationState {
	if job.HasApplicant(studentID) {
		return StateApplied
	}
	return StateNotApplied
}

type ApplyOutcome int

const (
	OutcomeApplied ApplyOutcome = iota + 1
	OutcomeAlreadyApplied
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeAlreadyApplied:
		return "already_applied"
	}
	return "unknown"
}

func (o ApplyOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// ===== SERVICE =====

type applicationService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewApplicationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ApplicationService {
	return &applicationService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// Apply is a read-check-write on the job's applicant list. Two students
// applying to the same job at the same moment can both read the old list and
// the later write drops the earlier applicant; the store offers no
// conditional write for this, so the gap is accepted.
func (s *applicationService) Apply(ctx context.Context, session *models.Session, jobID string) (ApplyOutcome, error) {
	if session == nil || session.UserID == "" {
		return 0, ErrUnauthorized
	}
	studentID := session.UserID

	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		return 0, applyError(err, "read job")
	}

	_, effect := NextApplicationState(ApplicationStateOf(job, studentID), EventApply)
	if effect == EffectNone {
		s.logger.Info("Student already applied", "job_id", jobID, "student_id", studentID)
		return OutcomeAlreadyApplied, nil
	}

	applied := append(slices.Clone([]string(job.Applied)), studentID)
	if err := s.repo.Job().UpdateApplied(ctx, s.db, jobID, applied); err != nil {
		return 0, applyError(err, "write applicant list")
	}

	s.logger.Info("Student applied to job",
		"job_id", jobID,
		"student_id", studentID,
		"applicants", len(applied))
	return OutcomeApplied, nil
}

func applyError(err error, op string) error {
	if repositories.IsNotFoundError(err) {
		return ErrJobNotFound
	}
	return fmt.Errorf("%w: %w", ErrApplyFailed, storeError(err, ErrJobNotFound, op))
}

func (s *applicationService) HasApplied(ctx context.Context, session *models.Session, jobID string) (bool, error) {
	if session == nil || session.UserID == "" {
		return false, ErrUnauthorized
	}

	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		return false, storeError(err, ErrJobNotFound, "read job")
	}
	return job.HasApplicant(session.UserID), nil
}

func (s *applicationService) Applicants(ctx context.Context, jobID string) ([]string, error) {
	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		return nil, storeError(err, ErrJobNotFound, "read job")
	}
	return slices.Clone([]string(job.Applied)), nil
}
