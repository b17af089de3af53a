// Package matching filters the job corpus by skill tags. Everything here is
// pure: no store access, no ranking, input order is preserved.
package matching

import (
	"strings"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

// RecommendJobs keeps the jobs where at least one student skill appears,
// case-insensitively, inside at least one of the job's skill tags.
// A student without skills gets no recommendations.
func RecommendJobs(studentSkills []string, jobs []*models.Job) []*models.Job {
	result := make([]*models.Job, 0)
	if len(studentSkills) == 0 {
		return result
	}

	needles := lowerAll(studentSkills)
	for _, job := range jobs {
		if job == nil {
			continue
		}
		if anyTagContainsAny(job.Skills, needles) {
			result = append(result, job)
		}
	}
	return result
}

// SearchJobs is the non-personalised listing filter. An empty query returns
// the corpus unchanged; otherwise a job is kept when the query appears inside
// any of its tags.
func SearchJobs(jobs []*models.Job, query string) []*models.Job {
	if query == "" {
		return jobs
	}

	needle := strings.ToLower(query)
	result := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}
		if anyTagContainsAny(job.Skills, []string{needle}) {
			result = append(result, job)
		}
	}
	return result
}

// MatchedTags returns the job tags that matched at least one student skill,
// in tag order. Used to explain a recommendation.
func MatchedTags(studentSkills []string, job *models.Job) []string {
	if job == nil || len(studentSkills) == 0 {
		return nil
	}

	needles := lowerAll(studentSkills)
	var matched []string
	for _, tag := range job.Skills {
		lt := strings.ToLower(tag)
		for _, n := range needles {
			if strings.Contains(lt, n) {
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}

func anyTagContainsAny(tags []string, needles []string) bool {
	for _, tag := range tags {
		lt := strings.ToLower(tag)
		for _, n := range needles {
			if strings.Contains(lt, n) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
