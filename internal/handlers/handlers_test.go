package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/export"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

// stubs embed the interface so only the methods a test needs are written

type stubAuth struct {
	services.AuthService
	sessions map[string]*models.Session
	err      error
}

func (s *stubAuth) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, services.ErrUnauthorized
	}
	return session, nil
}

func (s *stubAuth) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: %w", services.ErrValidationFailed, validator.ValidationErrors{
			{Field: "ConfirmPassword", Message: "must match Password", Rule: "eqfield"},
		})
	}
	return &models.User{ID: "u1", Email: req.Email}, nil
}

type stubProfile struct {
	services.ProfileService
}

type stubJobs struct {
	services.JobService
	jobs map[string]*models.Job
	err  error
}

func (s *stubJobs) Get(ctx context.Context, id string) (*models.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	job, ok := s.jobs[id]
	if !ok {
		return nil, services.ErrJobNotFound
	}
	return job, nil
}

func (s *stubJobs) List(ctx context.Context, query string) ([]*models.Job, error) {
	out := []*models.Job{}
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, nil
}

type stubApplications struct {
	services.ApplicationService
	applied map[string]bool
	// block waits for the request to be cancelled before answering
	block bool
}

func (s *stubApplications) Apply(ctx context.Context, session *models.Session, jobID string) (services.ApplyOutcome, error) {
	if s.block {
		<-ctx.Done()
		return services.OutcomeApplied, nil
	}
	key := session.UserID + "/" + jobID
	if s.applied[key] {
		return services.OutcomeAlreadyApplied, nil
	}
	s.applied[key] = true
	return services.OutcomeApplied, nil
}

type stubShortlist struct {
	services.ShortlistService
}

func (s *stubShortlist) ExportJob(ctx context.Context, session *models.Session, jobID string, w io.Writer) error {
	if jobID == "missing" {
		return services.ErrJobNotFound
	}
	return export.WriteStudentSheet(w, []export.StudentRow{{FirstName: "Asha"}})
}

type stubDashboard struct {
	services.DashboardService
	stats *services.AdminStats
}

func (s *stubDashboard) GetAdminStats(ctx context.Context, session *models.Session) (*services.AdminStats, error) {
	return s.stats, nil
}

type stubManager struct {
	auth      *stubAuth
	jobs      *stubJobs
	apps      *stubApplications
	shortlist *stubShortlist
	dashboard *stubDashboard
	healthErr error
}

func (m *stubManager) Auth() services.AuthService               { return m.auth }
func (m *stubManager) Profile() services.ProfileService         { return &stubProfile{} }
func (m *stubManager) Job() services.JobService                 { return m.jobs }
func (m *stubManager) Application() services.ApplicationService { return m.apps }
func (m *stubManager) Shortlist() services.ShortlistService     { return m.shortlist }
func (m *stubManager) Dashboard() services.DashboardService     { return m.dashboard }
func (m *stubManager) Initialize(ctx context.Context) error     { return nil }
func (m *stubManager) HealthCheck(ctx context.Context) error    { return m.healthErr }
func (m *stubManager) Shutdown(ctx context.Context) error       { return nil }

func newStubManager() *stubManager {
	stats := services.AggregateStats(map[models.UserRole]int64{}, nil)
	return &stubManager{
		auth: &stubAuth{sessions: map[string]*models.Session{
			"tok-student":   {UserID: "s1", Role: models.RoleStudent},
			"tok-recruiter": {UserID: "r1", Role: models.RoleRecruiter},
			"tok-admin":     {UserID: "a1", Role: models.RoleAdmin},
		}},
		jobs:      &stubJobs{jobs: map[string]*models.Job{"j1": {ID: "j1", Title: "Backend"}}},
		apps:      &stubApplications{applied: map[string]bool{}},
		shortlist: &stubShortlist{},
		dashboard: &stubDashboard{stats: &stats},
	}
}

func newTestRouter(m *stubManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(m, logger).SetupRoutes(router)
	return router
}

func do(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(newStubManager())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer tok-student", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/j1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_ProviderDown(t *testing.T) {
	m := newStubManager()
	m.auth.err = fmt.Errorf("%w: redis down", services.ErrTransientStore)
	router := newTestRouter(m)

	if w := do(router, http.MethodGet, "/api/v1/jobs", "tok-student", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestRoleGating(t *testing.T) {
	router := newTestRouter(newStubManager())

	tests := []struct {
		name, method, path, token string
		want                      int
	}{
		{"recruiter cannot apply", http.MethodPost, "/api/v1/jobs/j1/apply", "tok-recruiter", http.StatusForbidden},
		{"student cannot see admin stats", http.MethodGet, "/api/v1/admin/stats", "tok-student", http.StatusForbidden},
		{"student cannot export", http.MethodGet, "/api/v1/jobs/j1/export", "tok-student", http.StatusForbidden},
		{"admin cannot post jobs", http.MethodPost, "/api/v1/jobs", "tok-admin", http.StatusForbidden},
		{"admin sees stats", http.MethodGet, "/api/v1/admin/stats", "tok-admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(router, tt.method, tt.path, tt.token, ""); w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestApply_Outcomes(t *testing.T) {
	router := newTestRouter(newStubManager())

	for i, want := range []string{"applied", "already_applied"} {
		w := do(router, http.MethodPost, "/api/v1/jobs/j1/apply", "tok-student", "")
		if w.Code != http.StatusOK {
			t.Fatalf("call %d: status = %d", i, w.Code)
		}
		var body struct {
			JobID   string `json:"job_id"`
			Outcome string `json:"outcome"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Outcome != want || body.JobID != "j1" {
			t.Fatalf("call %d: got %+v, want outcome %q", i, body, want)
		}
	}
}

func TestAdminStats_NoJobsSerialisesNull(t *testing.T) {
	m := newStubManager()
	if !math.IsNaN(m.dashboard.stats.AverageApplicantsPerJob) {
		t.Fatal("fixture should have an undefined average")
	}
	router := newTestRouter(m)

	w := do(router, http.MethodGet, "/api/v1/admin/stats", "tok-admin", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if v, ok := body["average_applicants_per_job"]; !ok || v != nil {
		t.Fatalf("average_applicants_per_job = %v, want null", v)
	}
	if body["average_defined"] != false || body["total_jobs"] != float64(0) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		router := newTestRouter(newStubManager())
		if w := do(router, http.MethodGet, "/api/v1/jobs/nope", "tok-student", ""); w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("transient store", func(t *testing.T) {
		m := newStubManager()
		m.jobs.err = fmt.Errorf("%w: failed to get job: %w", services.ErrTransientStore, errors.New("timeout"))
		router := newTestRouter(m)
		if w := do(router, http.MethodGet, "/api/v1/jobs/j1", "tok-student", ""); w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", w.Code)
		}
	})

	t.Run("validation details", func(t *testing.T) {
		router := newTestRouter(newStubManager())
		body := `{"email":"a@b.edu","password":"secret1","confirm_password":"other"}`
		w := do(router, http.MethodPost, "/api/v1/auth/register", "", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		var resp struct {
			Message string                     `json:"message"`
			Details validator.ValidationErrors `json:"details"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Details) != 1 || resp.Details[0].Rule != "eqfield" {
			t.Fatalf("unexpected details %+v", resp)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		router := newTestRouter(newStubManager())
		if w := do(router, http.MethodPost, "/api/v1/auth/register", "", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestExportApplicants(t *testing.T) {
	router := newTestRouter(newStubManager())

	w := do(router, http.MethodGet, "/api/v1/jobs/j1/export", "tok-recruiter", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, export.FileName) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook")
	}

	w = do(router, http.MethodGet, "/api/v1/jobs/missing/export", "tok-admin", "")
	if w.Code != http.StatusNotFound || w.Header().Get("Content-Disposition") != "" {
		t.Fatalf("missing job export: status = %d, headers = %v", w.Code, w.Header())
	}
}

func TestCancelledRequestGetsNoBody(t *testing.T) {
	m := newStubManager()
	m.apps.block = true
	router := newTestRouter(m)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/j1/apply", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok-student")
	w := httptest.NewRecorder()

	cancel()
	router.ServeHTTP(w, req)

	if w.Body.Len() != 0 {
		t.Fatalf("late result was written: %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	m := newStubManager()
	router := newTestRouter(m)

	w := do(router, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("status = %d, request id = %q", w.Code, w.Header().Get("X-Request-ID"))
	}

	m.healthErr = errors.New("database ping failed")
	if w := do(router, http.MethodGet, "/health", "", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
