package services

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/cache"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	db        *gorm.DB
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, db *gorm.DB, cacheManager *cache.CacheManager, logger *slog.Logger, validator *validator.Validator) ProfileService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &profileService{
		repo:      repo,
		db:        db,
		cache:     cacheManager,
		logger:    logger,
		validator: validator,
	}
}

// ===== PROFILE =====

func (s *profileService) GetMyProfile(ctx context.Context, session *models.Session) (*models.StudentProfile, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthorized
	}
	return s.loadProfile(ctx, session.UserID)
}

// GetPublicProfile is cached; any record write by the student drops the entry
func (s *profileService) GetPublicProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := s.cache.Profile.CacheOrExecute(ctx, userID, &profile, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		return s.loadProfile(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *profileService) loadProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "get user")
	}

	profile := &models.StudentProfile{
		User:        user,
		Skills:      []*models.StudentSkill{},
		Projects:    []*models.Project{},
		Internships: []*models.Internship{},
		Educations:  []*models.Education{},
	}
	if user.Role != models.RoleStudent {
		return profile, nil
	}

	records := s.repo.StudentRecord()
	skills, err := records.ListSkills(ctx, s.db, userID)
	if err != nil {
		return nil, storeError(err, ErrRecordNotFound, "list skills")
	}
	profile.Skills = DedupeSkills(skills)

	if profile.Projects, err = records.ListProjects(ctx, s.db, userID); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "list projects")
	}
	if profile.Internships, err = records.ListInternships(ctx, s.db, userID); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "list internships")
	}
	if profile.Educations, err = records.ListEducations(ctx, s.db, userID); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "list educations")
	}
	return profile, nil
}

// DedupeSkills collapses exact duplicates only; "Go" and "go" both stay
func DedupeSkills(skills []*models.StudentSkill) []*models.StudentSkill {
	seen := make(map[string]struct{}, len(skills))
	out := make([]*models.StudentSkill, 0, len(skills))
	for _, skill := range skills {
		if _, ok := seen[skill.Skill]; ok {
			continue
		}
		seen[skill.Skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}

func (s *profileService) UpdateProfile(ctx context.Context, session *models.Session, req *ProfileUpdateRequest) (*models.User, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.User().GetByID(ctx, session.UserID)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "get user")
	}

	email := strings.TrimSpace(req.Email)
	if !strings.EqualFold(email, user.Email) {
		taken, err := s.repo.User().ExistsByEmail(ctx, email)
		if err != nil {
			return nil, storeError(err, ErrUserNotFound, "check email")
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	user.Email = email
	user.Institution = strings.TrimSpace(req.Institution)

	if err := s.repo.User().UpdateProfile(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, storeError(err, ErrUserNotFound, "update profile")
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return user, nil
}

// ===== SUB-RECORDS =====

func (s *profileService) requireStudent(session *models.Session) error {
	if session == nil || session.UserID == "" {
		return ErrUnauthorized
	}
	if !session.HasRole(models.RoleStudent) {
		return ErrForbidden
	}
	return nil
}

// AddSkill stores the skill as typed; matching lowercases at compare time
func (s *profileService) AddSkill(ctx context.Context, session *models.Session, req *SkillRequest) (*models.StudentSkill, error) {
	if err := s.requireStudent(session); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	skill := &models.StudentSkill{OwnerID: session.UserID, Skill: req.Skill}
	if err := s.repo.StudentRecord().AddSkill(ctx, s.db, skill); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "add skill")
	}
	return skill, nil
}

func (s *profileService) AddProject(ctx context.Context, session *models.Session, req *ProjectRequest) (*models.Project, error) {
	if err := s.requireStudent(session); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	project := &models.Project{
		OwnerID:     session.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		URL:         req.URL,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.repo.StudentRecord().AddProject(ctx, s.db, project); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "add project")
	}
	return project, nil
}

func (s *profileService) AddInternship(ctx context.Context, session *models.Session, req *InternshipRequest) (*models.Internship, error) {
	if err := s.requireStudent(session); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	internship := &models.Internship{
		OwnerID:   session.UserID,
		Company:   strings.TrimSpace(req.Company),
		Position:  strings.TrimSpace(req.Position),
		URL:       req.URL,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.StudentRecord().AddInternship(ctx, s.db, internship); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "add internship")
	}
	return internship, nil
}

func (s *profileService) AddEducation(ctx context.Context, session *models.Session, req *EducationRequest) (*models.Education, error) {
	if err := s.requireStudent(session); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	education := &models.Education{
		OwnerID:         session.UserID,
		College:         strings.TrimSpace(req.College),
		Degree:          strings.TrimSpace(req.Degree),
		Department:      strings.TrimSpace(req.Department),
		CurrentSemester: req.CurrentSemester,
		CurrentYear:     req.CurrentYear,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if err := s.repo.StudentRecord().AddEducation(ctx, s.db, education); err != nil {
		return nil, storeError(err, ErrRecordNotFound, "add education")
	}
	return education, nil
}

// DeleteRecord is owner only
func (s *profileService) DeleteRecord(ctx context.Context, session *models.Session, kind models.RecordKind, id string) error {
	if session == nil || session.UserID == "" {
		return ErrUnauthorized
	}

	owner, err := s.repo.StudentRecord().GetOwner(ctx, s.db, kind, id)
	if err != nil {
		return storeError(err, ErrRecordNotFound, "get record owner")
	}
	if !session.Owns(owner) {
		return ErrForbidden
	}

	if err := s.repo.StudentRecord().Delete(ctx, s.db, kind, id); err != nil {
		return storeError(err, ErrRecordNotFound, "delete record")
	}
	s.logger.Info("Record deleted", "kind", kind, "id", id, "owner_id", owner)
	return nil
}

// ===== GLOBAL PROJECTS =====

func (s *profileService) ListProjects(ctx context.Context, query string) ([]*models.ProjectListing, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	var listings []*models.ProjectListing
	err := s.cache.Profile.CacheOrExecute(ctx, "projects:"+needle, &listings, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		return s.scanProjects(ctx, needle)
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *profileService) scanProjects(ctx context.Context, needle string) ([]*models.ProjectListing, error) {
	projects, err := s.repo.StudentRecord().ListAllProjects(ctx, s.db)
	if err != nil {
		return nil, storeError(err, ErrRecordNotFound, "list projects")
	}

	matched := make([]*models.Project, 0, len(projects))
	ownerIDs := make([]string, 0, len(projects))
	seenOwner := make(map[string]struct{})
	for _, p := range projects {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		matched = append(matched, p)
		if _, ok := seenOwner[p.OwnerID]; !ok {
			seenOwner[p.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := s.repo.User().GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "load project owners")
	}
	names := make(map[string]string, len(owners))
	for _, u := range owners {
		names[u.ID] = u.FullName()
	}

	listings := make([]*models.ProjectListing, 0, len(matched))
	for _, p := range matched {
		listings = append(listings, &models.ProjectListing{
			Project:     p,
			StudentID:   p.OwnerID,
			StudentName: names[p.OwnerID],
		})
	}
	return listings, nil
}
