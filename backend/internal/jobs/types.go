// Package jobs scrapes job postings, extracts the skills they mention and
// ingests them into the vector store for similarity search.
package jobs

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	apperrors "linkedinsight/backend/pkg/errors"
)

var validate = validator.New()

// Job is a single job posting
type Job struct {
	ID          string           `json:"id"`
	Title       string           `json:"title" validate:"required"`
	Company     string           `json:"company"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	URL         string           `json:"url" validate:"omitempty,url"`
	Source      string           `json:"source"`
	Skills      *ExtractedSkills `json:"skills,omitempty"`
	ScrapedAt   time.Time        `json:"scraped_at"`
}

// ExtractedSkills groups the skills found in a description.
// Every list is deduplicated and sorted.
type ExtractedSkills struct {
	RequiredSkills       []string `json:"required_skills"`
	PreferredSkills      []string `json:"preferred_skills"`
	ProgrammingLanguages []string `json:"programming_languages"`
	TechnicalSkills      []string `json:"technical_skills"`
	AllSkills            []string `json:"all_skills"`
}

// IngestionSummary reports the outcome of an ingestion batch
type IngestionSummary struct {
	TotalJobs int      `json:"total_jobs"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// Validate checks required fields
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return apperrors.NewInvalidArgument("title", "Missing title")
	}
	if err := validate.Struct(j); err != nil {
		return apperrors.NewInvalidArgument("job", err.Error())
	}
	return nil
}

// JobID derives a stable identifier from title, company and location, so
// the same posting scraped twice maps to the same record
func JobID(title, company, location string) string {
	key := strings.TrimSpace(title) + "_" + strings.TrimSpace(company) + "_" + strings.TrimSpace(location)
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(key)).String()
}

// EmbeddingText is the text embedded for a job
func (j *Job) EmbeddingText() string {
	title := strings.TrimSpace(j.Title)
	description := strings.TrimSpace(j.Description)
	if description == "" {
		return title
	}
	return title + "\n\n" + description
}
