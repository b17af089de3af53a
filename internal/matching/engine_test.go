package matching

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

func job(id string, tags ...string) *models.Job {
	return &models.Job{ID: id, Skills: tags}
}

func ids(jobs []*models.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func corpus() []*models.Job {
	return []*models.Job{
		job("j1", "python", "react"),
		job("j2", "java", "spring boot"),
		job("j3", "golang", "postgresql"),
		job("j4"),
		job("j5", "machine learning", "python"),
	}
}

func TestRecommendJobs(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   []string
	}{
		{name: "upper case student skill matches lower case tag", skills: []string{"PYTHON"}, want: []string{"j1", "j5"}},
		{name: "no overlap", skills: []string{"rust"}, want: []string{}},
		{name: "substring of tag", skills: []string{"sql"}, want: []string{"j3"}},
		{name: "substring of multi word tag", skills: []string{"Boot"}, want: []string{"j2"}},
		{name: "tag shorter than skill does not match", skills: []string{"javascript"}, want: []string{}},
		{name: "order follows corpus", skills: []string{"learning", "react", "go"}, want: []string{"j1", "j3", "j5"}},
		{name: "empty skills recommend nothing", skills: nil, want: []string{}},
		{name: "empty slice recommend nothing", skills: []string{}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(RecommendJobs(tt.skills, corpus()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RecommendJobs(%v) = %v, want %v", tt.skills, got, tt.want)
			}
		})
	}
}

func TestRecommendJobs_JavaScenario(t *testing.T) {
	jobs := []*models.Job{job("j1", "python", "react")}

	if got := RecommendJobs([]string{"PYTHON"}, jobs); len(got) != 1 {
		t.Fatalf("expected python job to be recommended, got %v", ids(got))
	}
	if got := RecommendJobs([]string{"java"}, jobs); len(got) != 0 {
		t.Fatalf("expected no recommendation for java, got %v", ids(got))
	}
}

// The result is a subset of the corpus and a job is in it exactly when one of
// the skills is contained in one of its tags.
func TestRecommendJobs_SubsetAndMembership(t *testing.T) {
	skillSets := [][]string{
		{"py"}, {"JAVA", "go"}, {"ql"}, {"react", "ml"}, {"Spring Boot"}, {"x"},
	}

	for _, skills := range skillSets {
		all := corpus()
		got := RecommendJobs(skills, all)

		included := make(map[string]bool, len(got))
		for _, j := range got {
			included[j.ID] = true
		}

		for _, j := range all {
			want := false
			for _, s := range skills {
				for _, tag := range j.Skills {
					if strings.Contains(strings.ToLower(tag), strings.ToLower(s)) {
						want = true
					}
				}
			}
			if included[j.ID] != want {
				t.Errorf("skills %v job %s: included=%v want %v", skills, j.ID, included[j.ID], want)
			}
		}
		if len(got) > len(all) {
			t.Errorf("result larger than corpus for %v", skills)
		}
	}
}

func TestSearchJobs(t *testing.T) {
	all := corpus()

	if got := SearchJobs(all, ""); !reflect.DeepEqual(ids(got), ids(all)) {
		t.Fatalf("empty query should return the corpus, got %v", ids(got))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "PYTHON", want: []string{"j1", "j5"}},
		{query: "script", want: []string{}},
		{query: "gres", want: []string{"j3"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			once := SearchJobs(all, tt.query)
			if !reflect.DeepEqual(ids(once), tt.want) {
				t.Fatalf("SearchJobs(%q) = %v, want %v", tt.query, ids(once), tt.want)
			}
			twice := SearchJobs(once, tt.query)
			if !reflect.DeepEqual(ids(twice), ids(once)) {
				t.Fatalf("search is not idempotent: %v then %v", ids(once), ids(twice))
			}
		})
	}
}

// Recommend and search disagree on empty input; both behaviours are kept.
func TestEmptyInputsDiffer(t *testing.T) {
	all := corpus()
	if len(RecommendJobs(nil, all)) != 0 {
		t.Fatal("recommend with no skills must be empty")
	}
	if len(SearchJobs(all, "")) != len(all) {
		t.Fatal("search with no query must be unfiltered")
	}
}

func TestMatchedTags(t *testing.T) {
	got := MatchedTags([]string{"PY", "react"}, job("j1", "python", "react", "css"))
	want := []string{"python", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchedTags = %v, want %v", got, want)
	}
}
