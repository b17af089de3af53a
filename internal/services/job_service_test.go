package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Gopikasanthosh455/placement-app/internal/events"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

func validJobRequest() *CreateJobRequest {
	return &CreateJobRequest{
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Details:     "Build APIs",
		Industry:    "Software",
		CTC:         "12 LPA",
		Openings:    3,
		Skills:      []string{"  Python ", "REACT", "go"},
		DueDate:     "2024-07-01",
	}
}

func TestJobService_Create(t *testing.T) {
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewJobService(repo, nil, publisher, testLogger(), testValidator())

	job, err := svc.Create(context.Background(), recruiter("r1"), validJobRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.RecruiterID != "r1" {
		t.Errorf("RecruiterID = %q", job.RecruiterID)
	}
	want := []string{"python", "react", "go"}
	for i, tag := range want {
		if job.Skills[i] != tag {
			t.Fatalf("Skills = %v, want %v", job.Skills, want)
		}
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventJobPosted {
		t.Fatalf("expected one job.posted event, got %v", published)
	}
	var data events.JobPostedData
	if err := published[0].Decode(&data); err != nil {
		t.Fatal(err)
	}
	if data.JobID != job.ID || data.Openings != 3 || data.CompanyName != "Acme" {
		t.Errorf("unexpected payload %+v", data)
	}
}

func TestJobService_CreatePublishFailureIsNotSurfaced(t *testing.T) {
	publisher := events.NewMockEventPublisher(testLogger())
	publisher.FailWith(errors.New("broker down"))
	svc := NewJobService(newFakeRepo(), nil, publisher, testLogger(), testValidator())

	if _, err := svc.Create(context.Background(), recruiter("r1"), validJobRequest()); err != nil {
		t.Fatalf("Create() must not fail on notification errors, got %v", err)
	}
}

func TestJobService_CreateRejects(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Session
		mutate  func(*CreateJobRequest)
		wantErr error
	}{
		{"student cannot post", student("s1"), func(*CreateJobRequest) {}, ErrForbidden},
		{"missing title", recruiter("r1"), func(r *CreateJobRequest) { r.Title = "" }, ErrValidationFailed},
		{"negative openings", recruiter("r1"), func(r *CreateJobRequest) { r.Openings = -1 }, ErrValidationFailed},
		{"no skills", recruiter("r1"), func(r *CreateJobRequest) { r.Skills = nil }, ErrValidationFailed},
		{"blank skill", recruiter("r1"), func(r *CreateJobRequest) { r.Skills = []string{"  "} }, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			publisher := events.NewMockEventPublisher(testLogger())
			svc := NewJobService(repo, nil, publisher, testLogger(), testValidator())

			req := validJobRequest()
			tt.mutate(req)
			if _, err := svc.Create(context.Background(), tt.session, req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(repo.jobs.jobs) != 0 || len(publisher.GetPublishedEvents()) != 0 {
				t.Fatal("rejected create must not write or publish")
			}
		})
	}
}

func TestJobService_Recommend(t *testing.T) {
	repo := newFakeRepo().withJobs(
		newJob("j1", "r1", []string{"python", "react"}),
		newJob("j2", "r1", []string{"java"}),
		newJob("j3", "r2", []string{"reactjs"}),
	)
	ctx := context.Background()
	for _, skill := range []string{"PYTHON", "React"} {
		_ = repo.records.AddSkill(ctx, nil, &models.StudentSkill{OwnerID: "s1", Skill: skill})
	}
	svc := NewJobService(repo, nil, nil, testLogger(), testValidator())

	matches, err := svc.Recommend(ctx, student("s1"))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "j1" || matches[1].ID != "j3" {
		t.Fatalf("unexpected recommendations %v", matches)
	}
	if len(matches[0].MatchedSkills) != 2 {
		t.Errorf("MatchedSkills = %v", matches[0].MatchedSkills)
	}

	// no skills, no recommendations
	matches, err = svc.Recommend(ctx, student("s2"))
	if err != nil || len(matches) != 0 {
		t.Fatalf("Recommend() for skill-less student = %v, %v", matches, err)
	}

	if _, err := svc.Recommend(ctx, recruiter("r1")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for recruiter, got %v", err)
	}
}

func TestJobService_ListAndSearch(t *testing.T) {
	repo := newFakeRepo().withJobs(
		newJob("j1", "r1", []string{"python"}),
		newJob("j2", "r2", []string{"java"}),
	)
	svc := NewJobService(repo, nil, nil, testLogger(), testValidator())
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List(\"\") = %v, %v", all, err)
	}
	found, _ := svc.List(ctx, "JAV")
	if len(found) != 1 || found[0].ID != "j2" {
		t.Fatalf("List(JAV) = %v", found)
	}

	mine, err := svc.ListByRecruiter(ctx, recruiter("r1"))
	if err != nil || len(mine) != 1 || mine[0].ID != "j1" {
		t.Fatalf("ListByRecruiter() = %v, %v", mine, err)
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("Get(missing) error = %v", err)
	}
}

// Recruiter tags are lowercased at creation; student skills keep their casing
func TestSkillCasingAsymmetry(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	jobs := NewJobService(repo, nil, nil, testLogger(), testValidator())
	profiles := NewProfileService(repo, nil, nil, testLogger(), testValidator())

	job, err := jobs.Create(ctx, recruiter("r1"), validJobRequest())
	if err != nil {
		t.Fatal(err)
	}
	skill, err := profiles.AddSkill(ctx, student("s1"), &SkillRequest{Skill: "PyThOn"})
	if err != nil {
		t.Fatal(err)
	}

	if job.Skills[0] != "python" {
		t.Errorf("job tag = %q, want lowercased", job.Skills[0])
	}
	if skill.Skill != "PyThOn" {
		t.Errorf("student skill = %q, want stored as typed", skill.Skill)
	}

	matches, err := jobs.Recommend(ctx, student("s1"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("case-insensitive match expected, got %v, %v", matches, err)
	}
}
