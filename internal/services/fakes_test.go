package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

var errStoreDown = errors.New("connection reset")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== JOBS =====

type fakeJobRepo struct {
	mu      sync.Mutex
	jobs    map[string]*models.Job
	order   []string
	nextID  int
	writes  int
	getErr  error
	saveErr error
	// beforeUpdate runs once, before the next UpdateApplied is applied
	beforeUpdate func()
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[string]*models.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
		r.order = append(r.order, j.ID)
	}
	return r
}

func cloneJob(j *models.Job) *models.Job {
	c := *j
	c.Skills = slices.Clone(j.Skills)
	c.Applied = slices.Clone(j.Applied)
	return &c
}

func (r *fakeJobRepo) Create(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.nextID++
	job.ID = "job-" + strconv.Itoa(r.nextID)
	r.jobs[job.ID] = cloneJob(job)
	r.order = append(r.order, job.ID)
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	j, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneJob(j), nil
}

func (r *fakeJobRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.JobFilters) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := []*models.Job{}
	for _, id := range r.order {
		j, ok := r.jobs[id]
		if !ok {
			continue
		}
		if filters.RecruiterID != "" && j.RecruiterID != filters.RecruiterID {
			continue
		}
		out = append(out, cloneJob(j))
	}
	return out, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) UpdateApplied(ctx context.Context, tx *gorm.DB, id string, applied []string) error {
	r.mu.Lock()
	hook := r.beforeUpdate
	r.beforeUpdate = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	j, ok := r.jobs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	j.Applied = slices.Clone(applied)
	r.writes++
	return nil
}

func (r *fakeJobRepo) applied(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone([]string(r.jobs[id].Applied))
}

// ===== USERS =====

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Role == role, nil
}

// ===== STUDENT RECORDS =====

type fakeRecordRepo struct {
	mu          sync.Mutex
	seq         int
	skills      []*models.StudentSkill
	projects    []*models.Project
	internships []*models.Internship
	educations  []*models.Education
}

func (r *fakeRecordRepo) id() string {
	r.seq++
	return "rec-" + strconv.Itoa(r.seq)
}

func (r *fakeRecordRepo) AddSkill(ctx context.Context, tx *gorm.DB, skill *models.StudentSkill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	skill.ID = r.id()
	r.skills = append(r.skills, skill)
	return nil
}

func (r *fakeRecordRepo) ListSkills(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.StudentSkill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ownedBy(r.skills, ownerID, func(s *models.StudentSkill) string { return s.OwnerID }), nil
}

func (r *fakeRecordRepo) AddProject(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = r.id()
	r.projects = append(r.projects, project)
	return nil
}

func (r *fakeRecordRepo) ListProjects(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ownedBy(r.projects, ownerID, func(p *models.Project) string { return p.OwnerID }), nil
}

func (r *fakeRecordRepo) ListAllProjects(ctx context.Context, tx *gorm.DB) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.projects), nil
}

func (r *fakeRecordRepo) AddInternship(ctx context.Context, tx *gorm.DB, internship *models.Internship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	internship.ID = r.id()
	r.internships = append(r.internships, internship)
	return nil
}

func (r *fakeRecordRepo) ListInternships(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ownedBy(r.internships, ownerID, func(i *models.Internship) string { return i.OwnerID }), nil
}

func (r *fakeRecordRepo) AddEducation(ctx context.Context, tx *gorm.DB, education *models.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	education.ID = r.id()
	r.educations = append(r.educations, education)
	return nil
}

func (r *fakeRecordRepo) ListEducations(ctx context.Context, tx *gorm.DB, ownerID string) ([]*models.Education, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ownedBy(r.educations, ownerID, func(e *models.Education) string { return e.OwnerID }), nil
}

func (r *fakeRecordRepo) GetOwner(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case models.RecordSkill:
		for _, s := range r.skills {
			if s.ID == id {
				return s.OwnerID, nil
			}
		}
	case models.RecordProject:
		for _, p := range r.projects {
			if p.ID == id {
				return p.OwnerID, nil
			}
		}
	}
	return "", repositories.ErrNotFound
}

func (r *fakeRecordRepo) Delete(ctx context.Context, tx *gorm.DB, kind models.RecordKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case models.RecordSkill:
		r.skills = slices.DeleteFunc(r.skills, func(s *models.StudentSkill) bool { return s.ID == id })
	case models.RecordProject:
		r.projects = slices.DeleteFunc(r.projects, func(p *models.Project) bool { return p.ID == id })
	}
	return nil
}

func ownedBy[T any](items []T, ownerID string, owner func(T) string) []T {
	out := []T{}
	for _, it := range items {
		if owner(it) == ownerID {
			out = append(out, it)
		}
	}
	return out
}

// ===== DASHBOARD =====

// fakeDashboardRepo derives its numbers from the other fakes
type fakeDashboardRepo struct {
	users *fakeUserRepo
	jobs  *fakeJobRepo
}

func (r *fakeDashboardRepo) CountUsersByRole(ctx context.Context, tx *gorm.DB) (map[models.UserRole]int64, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	counts := map[models.UserRole]int64{}
	for _, role := range models.AllRoles {
		counts[role] = 0
	}
	for _, u := range r.users.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *fakeDashboardRepo) ListApplicantCounts(ctx context.Context, tx *gorm.DB) ([]repositories.JobApplicantCount, error) {
	jobs, err := r.jobs.List(ctx, tx, repositories.JobFilters{})
	if err != nil {
		return nil, err
	}
	out := []repositories.JobApplicantCount{}
	for _, j := range jobs {
		out = append(out, repositories.JobApplicantCount{JobID: j.ID, Title: j.Title, Applicants: len(j.Applied)})
	}
	return out, nil
}

// ===== IDENTITY =====

type fakeIdentity struct {
	accounts   map[string]string
	sessions   map[string]*models.Session
	signedOut  []string
	created    int
	changedFor string
	err        error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: map[string]string{}, sessions: map[string]*models.Session{}}
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*repositories.AuthToken, error) {
	if f.accounts[email] != password {
		return nil, repositories.ErrUnauthenticated
	}
	return &repositories.AuthToken{AccessToken: "tok-" + email, TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password string, role models.UserRole) (*repositories.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.accounts[email]; ok {
		return nil, repositories.ErrDuplicate
	}
	f.accounts[email] = password
	f.created++
	return &repositories.Identity{ID: "uid-" + email, Email: email, Role: role}, nil
}

func (f *fakeIdentity) SignOut(ctx context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

func (f *fakeIdentity) CurrentUser(ctx context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, repositories.ErrUnauthenticated
	}
	c := *s
	return &c, nil
}

func (f *fakeIdentity) ChangePassword(ctx context.Context, session *models.Session, newPassword string) error {
	f.changedFor = session.UserID
	return nil
}

// ===== REPOSITORY =====

type fakeRepo struct {
	users     *fakeUserRepo
	jobs      *fakeJobRepo
	records   *fakeRecordRepo
	identity  *fakeIdentity
	dashboard *fakeDashboardRepo
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		users:    newFakeUserRepo(),
		jobs:     newFakeJobRepo(),
		records:  &fakeRecordRepo{},
		identity: newFakeIdentity(),
	}
	r.dashboard = &fakeDashboardRepo{users: r.users, jobs: r.jobs}
	return r
}

func (r *fakeRepo) withJobs(jobs ...*models.Job) *fakeRepo {
	r.jobs = newFakeJobRepo(jobs...)
	r.dashboard.jobs = r.jobs
	return r
}

func (r *fakeRepo) withUsers(users ...*models.User) *fakeRepo {
	for _, u := range users {
		r.users.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) User() repositories.UserRepository                   { return r.users }
func (r *fakeRepo) Job() repositories.JobRepository                     { return r.jobs }
func (r *fakeRepo) StudentRecord() repositories.StudentRecordRepository { return r.records }
func (r *fakeRepo) Dashboard() repositories.DashboardRepository         { return r.dashboard }
func (r *fakeRepo) Identity() repositories.IdentityProvider             { return r.identity }
func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                   { return nil }

// ===== FIXTURES =====

func student(id string) *models.Session {
	return &models.Session{UserID: id, Role: models.RoleStudent, Token: "tok-" + id}
}

func recruiter(id string) *models.Session {
	return &models.Session{UserID: id, Role: models.RoleRecruiter, Token: "tok-" + id}
}

func admin(id string) *models.Session {
	return &models.Session{UserID: id, Role: models.RoleAdmin, Token: "tok-" + id}
}

func newJob(id, recruiterID string, skills []string, applied ...string) *models.Job {
	return &models.Job{
		ID:          id,
		Title:       "Job " + id,
		CompanyName: "Acme",
		RecruiterID: recruiterID,
		Skills:      skills,
		Applied:     applied,
	}
}

func newUser(id string, role models.UserRole) *models.User {
	return &models.User{
		ID:          id,
		Role:        role,
		FirstName:   "First" + id,
		LastName:    "Last" + id,
		PhoneNumber: "555-" + id,
		Email:       id + "@campus.edu",
		Institution: "Campus",
	}
}

func testValidator() *validator.Validator {
	return validator.New()
}
