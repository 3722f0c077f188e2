package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"linkedinsight/backend/internal/constants"
	"linkedinsight/backend/internal/jobs"
)

type scrapeRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit" binding:"omitempty,min=1,max=100"`
}

func (s *Server) scrapeJobs(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		badRequest(c, "Query cannot be empty")
		return
	}
	limit := constants.DefaultScrapeLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	result, err := s.deps.Jobs.Run(c.Request.Context(), query, limit)
	if err != nil {
		s.respondError(c, "scraping or ingesting jobs", err)
		return
	}

	summary := result.Ingestion
	var message string
	switch {
	case result.Scraped == 0:
		message = fmt.Sprintf("No jobs found for query: '%s'", query)
	case summary.Failed == 0:
		message = fmt.Sprintf("Successfully scraped %d jobs and processed %d into vector database", result.Scraped, summary.Processed)
	default:
		message = fmt.Sprintf("Scraped %d jobs. Processed %d, %d failed", result.Scraped, summary.Processed, summary.Failed)
	}

	c.JSON(http.StatusOK, gin.H{
		"query":             query,
		"scraped_count":     result.Scraped,
		"ingestion_summary": summary,
		"message":           message,
	})
}

type ingestRequest struct {
	Jobs []jobs.Job `json:"jobs" binding:"required"`
}

func (s *Server) ingestJobs(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	now := time.Now().UTC()
	for i := range req.Jobs {
		if req.Jobs[i].Source == "" {
			req.Jobs[i].Source = constants.SourceManual
		}
		if req.Jobs[i].ScrapedAt.IsZero() {
			req.Jobs[i].ScrapedAt = now
		}
	}

	summary := s.deps.Jobs.Ingest(c.Request.Context(), req.Jobs)
	c.JSON(http.StatusOK, gin.H{
		"ingestion_summary": summary,
		"message":           fmt.Sprintf("Processed %d of %d jobs", summary.Processed, summary.TotalJobs),
	})
}

type jobMatch struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Company              string  `json:"company"`
	Location             string  `json:"location"`
	Similarity           float64 `json:"similarity"`
	Distance             float64 `json:"distance"`
	URL                  string  `json:"url"`
	ProgrammingLanguages string  `json:"programming_languages"`
	TechnicalSkills      string  `json:"technical_skills"`
}

func (s *Server) matchJobs(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		badRequest(c, "Query text cannot be empty")
		return
	}
	n, ok := intQuery(c, "n", constants.DefaultMatchCount, 1, constants.MaxMatchCount)
	if !ok {
		return
	}

	filter := map[string]string{}
	for _, key := range []string{"company", "location", "source"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			filter[key] = v
		}
	}

	results, err := s.deps.Jobs.Match(c.Request.Context(), text, n, filter)
	if err != nil {
		s.respondError(c, "matching jobs", err)
		return
	}

	matches := make([]jobMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, jobMatch{
			ID:                   r.ID,
			Title:                metaOr(r.Metadata, "title", "N/A"),
			Company:              metaOr(r.Metadata, "company", "N/A"),
			Location:             metaOr(r.Metadata, "location", "N/A"),
			Similarity:           round4(float64(r.Similarity)),
			Distance:             round4(float64(r.Distance)),
			URL:                  r.Metadata["url"],
			ProgrammingLanguages: r.Metadata["programming_languages"],
			TechnicalSkills:      r.Metadata["technical_skills"],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"query_text": text,
		"matches":    matches,
		"count":      len(matches),
	})
}

func (s *Server) jobStats(c *gin.Context) {
	stats, err := s.deps.Jobs.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, "retrieving job stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection_stats": stats,
		"message":          fmt.Sprintf("Vector database contains %d job embeddings", stats.Count),
	})
}

func (s *Server) topSkills(c *gin.Context) {
	if s.deps.JobStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Job store is not configured"})
		return
	}
	limit, ok := intQuery(c, "limit", 10, 1, 100)
	if !ok {
		return
	}

	demand, err := s.deps.JobStore.TopSkills(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, "retrieving skill demand", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skills": demand,
		"count":  len(demand),
	})
}

func (s *Server) deleteJob(c *gin.Context) {
	id := c.Param("id")
	found, err := s.deps.Jobs.Delete(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, "deleting job", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Job '%s' not found", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"message": fmt.Sprintf("Job '%s' deleted", id),
	})
}

// intQuery parses an optional integer query parameter within [min, max]
func intQuery(c *gin.Context, key string, def, lo, hi int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s must be an integer", key))
		return 0, false
	}
	if v < lo || v > hi {
		badRequest(c, fmt.Sprintf("%s must be between %d and %d", key, lo, hi))
		return 0, false
	}
	return v, true
}

func metaOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
