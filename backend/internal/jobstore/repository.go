// Package jobstore persists ingested job postings and the skills they
// require in Neo4j.
package jobstore

import (
	"context"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"linkedinsight/backend/internal/jobs"
	apperrors "linkedinsight/backend/pkg/errors"
	"linkedinsight/backend/pkg/logger"
)

// Skill categories stored on REQUIRES relationships
const (
	CategoryRequired  = "required"
	CategoryPreferred = "preferred"
	CategoryLanguage  = "programming_language"
	CategoryTechnical = "technical"
)

// Repository handles all Neo4j operations for job postings
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new job repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Connect opens a driver and verifies connectivity
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// Ping verifies the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewGraphConnectionFailed("", err)
	}
	return nil
}

const saveJobQuery = `
	MERGE (j:Job {id: $id})
	SET j.title = $title,
		j.company = $company,
		j.location = $location,
		j.description = $description,
		j.url = $url,
		j.source = $source,
		j.scraped_at = $scraped_at
	WITH j
	OPTIONAL MATCH (j)-[old:REQUIRES]->(:Skill)
	DELETE old
	WITH DISTINCT j
	UNWIND $skills AS s
	MERGE (k:Skill {name: s.name})
	MERGE (j)-[r:REQUIRES]->(k)
	SET r.category = s.category
`

// SaveJob upserts a job node and links it to its extracted skills.
// Previously stored skill links of the same job are replaced.
func (r *Repository) SaveJob(ctx context.Context, job jobs.Job) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, saveJobQuery, jobParams(job))
	if err != nil {
		return apperrors.NewGraphQueryFailed("save job", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return apperrors.NewGraphQueryFailed("save job", err)
	}

	r.logger.Debug("Job saved", zap.String("job_id", job.ID), zap.String("title", job.Title))
	return nil
}

// DeleteJob removes a job and reports whether it existed.
// Skill nodes left without any job are removed too.
func (r *Repository) DeleteJob(ctx context.Context, id string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (j:Job {id: $id})
		DETACH DELETE j
	`, map[string]interface{}{"id": id})
	if err != nil {
		return false, apperrors.NewGraphQueryFailed("delete job", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return false, apperrors.NewGraphQueryFailed("delete job", err)
	}
	deleted := summary.Counters().NodesDeleted() > 0

	if deleted {
		r.pruneOrphanSkills(ctx, session)
	}
	return deleted, nil
}

// pruneOrphanSkills removes skills no stored job requires. Failures are logged only.
func (r *Repository) pruneOrphanSkills(ctx context.Context, session neo4j.SessionWithContext) {
	result, err := session.Run(ctx, pruneOrphanSkillsQuery, nil)
	if err == nil {
		_, err = result.Consume(ctx)
	}
	if err != nil {
		r.logger.Warn("Failed to prune orphan skills", zap.Error(err))
	}
}

const pruneOrphanSkillsQuery = `
	MATCH (k:Skill)
	WHERE NOT (k)<-[:REQUIRES]-(:Job)
	DELETE k
`

// CountJobs returns the number of stored jobs
func (r *Repository) CountJobs(ctx context.Context) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, "MATCH (j:Job) RETURN count(j) AS count", nil)
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("count jobs", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return 0, apperrors.NewGraphQueryFailed("count jobs", err)
		}
		return 0, nil
	}
	return getIntFromRecord(result.Record(), "count"), nil
}

// SkillDemand is how many stored jobs require a skill
type SkillDemand struct {
	Skill string `json:"skill"`
	Jobs  int    `json:"jobs"`
}

// TopSkills returns the skills required by the most stored jobs
func (r *Repository) TopSkills(ctx context.Context, limit int) ([]SkillDemand, error) {
	if limit <= 0 {
		return nil, apperrors.NewInvalidArgument("limit", "Limit must be a positive integer")
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (k:Skill)<-[:REQUIRES]-(j:Job)
		RETURN k.name AS skill, count(j) AS jobs
		ORDER BY jobs DESC, skill ASC
		LIMIT $limit
	`, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("top skills", err)
	}

	demand := []SkillDemand{}
	for result.Next(ctx) {
		record := result.Record()
		demand = append(demand, SkillDemand{
			Skill: getStringFromRecord(record, "skill"),
			Jobs:  getIntFromRecord(record, "jobs"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("top skills", err)
	}
	return demand, nil
}

func jobParams(job jobs.Job) map[string]interface{} {
	return map[string]interface{}{
		"id":          job.ID,
		"title":       job.Title,
		"company":     job.Company,
		"location":    job.Location,
		"description": job.Description,
		"url":         job.URL,
		"source":      job.Source,
		"scraped_at":  job.ScrapedAt,
		"skills":      skillParams(job.Skills),
	}
}

// skillParams flattens extracted skills into one entry per name. A skill in
// several lists keeps the first category of required, preferred, language, technical.
func skillParams(skills *jobs.ExtractedSkills) []interface{} {
	if skills == nil {
		return []interface{}{}
	}

	category := make(map[string]string)
	assign := func(names []string, cat string) {
		for _, name := range names {
			if _, ok := category[name]; !ok {
				category[name] = cat
			}
		}
	}
	assign(skills.RequiredSkills, CategoryRequired)
	assign(skills.PreferredSkills, CategoryPreferred)
	assign(skills.ProgrammingLanguages, CategoryLanguage)
	assign(skills.TechnicalSkills, CategoryTechnical)

	names := make([]string, 0, len(category))
	for name := range category {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]interface{}, 0, len(names))
	for _, name := range names {
		params = append(params, map[string]interface{}{
			"name":     name,
			"category": category[name],
		})
	}
	return params
}
