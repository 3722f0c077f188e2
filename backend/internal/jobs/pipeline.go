package jobs

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"linkedinsight/backend/internal/constants"
	"linkedinsight/backend/internal/vectorstore"
	apperrors "linkedinsight/backend/pkg/errors"
	"linkedinsight/backend/pkg/logger"
)

// Source produces job postings for a search query
type Source interface {
	Scrape(ctx context.Context, query string, limit int) ([]Job, error)
}

// Embedder turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore stores and searches job embeddings
type VectorStore interface {
	Upsert(rec vectorstore.Record) error
	Get(id string) (vectorstore.Record, bool)
	Query(vector []float32, n int, filter map[string]string) ([]vectorstore.Match, error)
	Delete(id string) bool
	Count() int
	Name() string
}

// JobRecorder persists ingested jobs outside the vector store
type JobRecorder interface {
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, id string) (bool, error)
	CountJobs(ctx context.Context) (int, error)
}

// RunResult combines scrape and ingestion outcomes
type RunResult struct {
	Scraped   int              `json:"scraped"`
	Ingestion IngestionSummary `json:"ingestion"`
}

// CollectionStats describes the stored jobs
type CollectionStats struct {
	Count          int    `json:"count"`
	CollectionName string `json:"collection_name"`
	StoredJobs     *int   `json:"stored_jobs,omitempty"`
}

// Pipeline wires scraping, extraction, embedding and storage
type Pipeline struct {
	source      Source
	embedder    Embedder
	store       VectorStore
	recorder    JobRecorder
	concurrency int
	observe     func(status string)
	logger      *zap.Logger
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithRecorder persists every ingested job through r
func WithRecorder(r JobRecorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = r }
}

// WithConcurrency bounds the number of jobs processed at once
func WithConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithObserver receives "processed" or "failed" per ingested job
func WithObserver(fn func(status string)) PipelineOption {
	return func(p *Pipeline) {
		if fn != nil {
			p.observe = fn
		}
	}
}

// NewPipeline creates an ingestion pipeline
func NewPipeline(source Source, embedder Embedder, store VectorStore, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		source:      source,
		embedder:    embedder,
		store:       store,
		concurrency: 4,
		observe:     func(string) {},
		logger:      logger.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run scrapes query and ingests the results
func (p *Pipeline) Run(ctx context.Context, query string, limit int) (*RunResult, error) {
	p.logger.Info("Starting pipeline", zap.String("query", query), zap.Int("limit", limit))

	jobs, err := p.source.Scrape(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	for i := range jobs {
		if strings.TrimSpace(jobs[i].Description) != "" {
			skills := ExtractSkills(jobs[i].Description)
			jobs[i].Skills = &skills
		}
	}

	summary := p.Ingest(ctx, jobs)
	return &RunResult{Scraped: len(jobs), Ingestion: summary}, nil
}

// Ingest embeds and stores jobs. A failing job is counted and reported but
// never stops the rest of the batch. Errors are listed in input order.
func (p *Pipeline) Ingest(ctx context.Context, jobs []Job) IngestionSummary {
	summary := IngestionSummary{TotalJobs: len(jobs), Errors: []string{}}
	if len(jobs) == 0 {
		return summary
	}

	p.logger.Info("Starting ingestion", zap.Int("jobs", len(jobs)))

	results := make([]error, len(jobs))
	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i := range jobs {
		g.Go(func() error {
			results[i] = p.ingestOne(ctx, &jobs[i])
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err == nil {
			summary.Processed++
			p.observe("processed")
			continue
		}
		summary.Failed++
		p.observe("failed")

		title := strings.TrimSpace(jobs[i].Title)
		if title == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Job %d: %s", i+1, apperrors.ClientMessage(err)))
		} else {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Job %d (%s): %v", i+1, title, err))
		}
	}

	p.logger.Info("Ingestion complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
	)
	return summary
}

func (p *Pipeline) ingestOne(ctx context.Context, job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.Title = strings.TrimSpace(job.Title)
	job.Description = strings.TrimSpace(job.Description)
	job.ID = JobID(job.Title, job.Company, job.Location)
	if job.Skills == nil {
		skills := ExtractSkills(job.Description)
		job.Skills = &skills
	}

	text := job.EmbeddingText()
	vector, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}
	if len(vector) == 0 {
		return apperrors.NewEmbeddingFailed("", fmt.Errorf("empty embedding"))
	}

	rec := vectorstore.Record{
		ID:       job.ID,
		Vector:   vector,
		Document: text,
		Metadata: metadataFor(job),
	}
	previous, existed := p.store.Get(job.ID)
	if err := p.store.Upsert(rec); err != nil {
		return fmt.Errorf("failed to add to vector store: %w", err)
	}

	if p.recorder != nil {
		if err := p.recorder.SaveJob(ctx, *job); err != nil {
			p.logger.Warn("Failed to record job", zap.String("job_id", job.ID), zap.Error(err))
			p.rollback(job.ID, previous, existed)
			return err
		}
	}
	return nil
}

// rollback puts the vector store back to its state before a failed ingest
func (p *Pipeline) rollback(id string, previous vectorstore.Record, existed bool) {
	if !existed {
		p.store.Delete(id)
		return
	}
	if err := p.store.Upsert(previous); err != nil {
		p.logger.Warn("Failed to restore previous job record", zap.String("job_id", id), zap.Error(err))
	}
}

func metadataFor(job *Job) map[string]string {
	sep := constants.MetadataListSeparator
	return map[string]string{
		"title":                 job.Title,
		"company":               defaultString(job.Company, "N/A"),
		"location":              defaultString(job.Location, "N/A"),
		"url":                   job.URL,
		"source":                defaultString(job.Source, "unknown"),
		"programming_languages": strings.Join(job.Skills.ProgrammingLanguages, sep),
		"technical_skills":      strings.Join(job.Skills.TechnicalSkills, sep),
		"required_skills":       strings.Join(job.Skills.RequiredSkills, sep),
	}
}

// Match returns the n stored jobs most similar to text
func (p *Pipeline) Match(ctx context.Context, text string, n int, filter map[string]string) ([]vectorstore.Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewInvalidArgument("text", "Query text cannot be empty")
	}
	if n <= 0 {
		return nil, apperrors.NewInvalidArgument("n", "Number of results must be positive")
	}

	vector, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, apperrors.NewEmbeddingFailed("", fmt.Errorf("failed to generate embedding for query text"))
	}

	return p.store.Query(vector, n, filter)
}

// Delete removes a job from the vector store and the recorder.
// It reports whether the job existed in either.
func (p *Pipeline) Delete(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, apperrors.NewInvalidArgument("id", "Job ID cannot be empty")
	}

	found := p.store.Delete(id)
	if p.recorder != nil {
		recorded, err := p.recorder.DeleteJob(ctx, id)
		if err != nil {
			return found, err
		}
		found = found || recorded
	}
	return found, nil
}

// Stats reports collection counts
func (p *Pipeline) Stats(ctx context.Context) (CollectionStats, error) {
	stats := CollectionStats{
		Count:          p.store.Count(),
		CollectionName: p.store.Name(),
	}
	if p.recorder != nil {
		stored, err := p.recorder.CountJobs(ctx)
		if err != nil {
			return stats, err
		}
		stats.StoredJobs = &stored
	}
	return stats, nil
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
