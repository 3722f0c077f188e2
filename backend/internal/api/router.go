// Package api exposes the skills graph, job matching and career advisor
// over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"linkedinsight/backend/internal/jobs"
	"linkedinsight/backend/internal/jobstore"
	"linkedinsight/backend/internal/metrics"
	"linkedinsight/backend/internal/skills"
	"linkedinsight/backend/internal/vectorstore"
	"linkedinsight/backend/pkg/logger"
)

// AdvisorService generates career guidance text
type AdvisorService interface {
	GenerateRoadmap(ctx context.Context, skills []string) (string, error)
	ExplainSkillGaps(ctx context.Context, userSkills, missingSkills []string) (string, error)
	RecommendSkills(ctx context.Context, userSkills []string, targetRole string) (string, error)
}

// JobService scrapes, ingests and searches job postings
type JobService interface {
	Run(ctx context.Context, query string, limit int) (*jobs.RunResult, error)
	Ingest(ctx context.Context, postings []jobs.Job) jobs.IngestionSummary
	Match(ctx context.Context, text string, n int, filter map[string]string) ([]vectorstore.Match, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (jobs.CollectionStats, error)
}

// JobStore is the persistent side of the job collection
type JobStore interface {
	Ping(ctx context.Context) error
	TopSkills(ctx context.Context, limit int) ([]jobstore.SkillDemand, error)
}

// Deps are the collaborators served by the router.
// JobStore may be nil when no database is configured.
type Deps struct {
	Graph       *skills.Graph
	Advisor     AdvisorService
	Jobs        JobService
	JobStore    JobStore
	Metrics     *metrics.Registry
	EmbedModel  string
	CORSOrigins []string
}

// Server holds request handlers and their dependencies
type Server struct {
	deps   Deps
	logger *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(deps Deps) *gin.Engine {
	s := &Server{deps: deps, logger: logger.Get()}
	if deps.Metrics == nil {
		s.deps.Metrics = metrics.NewRegistry()
	}
	s.refreshGraphMetrics()

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(cors(deps.CORSOrigins))
	router.Use(s.deps.Metrics.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/test/system", s.systemCheck)
	router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))

	sk := router.Group("/skills")
	{
		sk.GET("/graph/related", s.relatedSkills)
		sk.GET("/graph/prereqs", s.prerequisites)
		sk.GET("/graph/path", s.learningPath)
		sk.GET("/graph/stats", s.graphStats)
		sk.GET("/all", s.allSkills)
		sk.POST("/add", s.addSkill)
		sk.POST("/add-prerequisite", s.addPrerequisite)
		sk.POST("/extract", s.extractSkills)
	}

	jb := router.Group("/jobs")
	{
		jb.POST("/scrape", s.scrapeJobs)
		jb.POST("/ingest", s.ingestJobs)
		jb.GET("/match", s.matchJobs)
		jb.GET("/stats", s.jobStats)
		jb.GET("/top-skills", s.topSkills)
		jb.DELETE("/:id", s.deleteJob)
	}

	ai := router.Group("/ai")
	{
		ai.POST("/roadmap", s.roadmap)
		ai.POST("/explain-skill-gaps", s.explainSkillGaps)
		ai.POST("/recommendations", s.recommendations)
	}

	return router
}

// systemCheck reports the status of each subsystem without calling paid APIs
func (s *Server) systemCheck(c *gin.Context) {
	results := gin.H{
		"db":           "ok",
		"graph":        "ok",
		"embeddings":   "ok",
		"vector_store": "ok",
	}

	if s.deps.JobStore == nil {
		results["db"] = "error: job store not configured"
	} else if err := s.deps.JobStore.Ping(c.Request.Context()); err != nil {
		results["db"] = "error: " + err.Error()
	}

	if s.deps.Graph == nil {
		results["graph"] = "error: skills graph not initialized"
	} else if !s.deps.Graph.Stats().IsDAG {
		results["graph"] = "error: skills graph contains a cycle"
	}

	if s.deps.EmbedModel == "" {
		results["embeddings"] = "error: embedding model not configured"
	}

	if s.deps.Jobs == nil {
		results["vector_store"] = "error: job pipeline not configured"
	} else if _, err := s.deps.Jobs.Stats(c.Request.Context()); err != nil {
		results["vector_store"] = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, results)
}

func (s *Server) refreshGraphMetrics() {
	if s.deps.Graph == nil {
		return
	}
	stats := s.deps.Graph.Stats()
	s.deps.Metrics.SetGraphSize(stats.NumSkills, stats.NumRelationships)
}
