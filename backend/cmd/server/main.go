package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"linkedinsight/backend/internal/adapter"
	"linkedinsight/backend/internal/advisor"
	"linkedinsight/backend/internal/api"
	"linkedinsight/backend/internal/constants"
	"linkedinsight/backend/internal/jobs"
	"linkedinsight/backend/internal/jobstore"
	"linkedinsight/backend/internal/metrics"
	"linkedinsight/backend/internal/skills"
	"linkedinsight/backend/internal/vectorstore"
	"linkedinsight/backend/pkg/config"
	"linkedinsight/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogFile); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	graph, err := buildGraph(cfg)
	if err != nil {
		log.Fatal("Failed to build skills graph", zap.Error(err))
	}
	stats := graph.Stats()
	log.Info("Skills graph ready",
		zap.Int("skills", stats.NumSkills),
		zap.Int("relationships", stats.NumRelationships),
	)

	registry := metrics.NewRegistry()

	llm := adapter.NewLLMAdapter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbedModel)
	llm.SetObserver(registry.RecordLLMRequest)
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; AI and embedding endpoints will fail")
	}

	scraper, err := jobs.NewScraper(cfg.ScraperBaseURL, time.Duration(cfg.ScraperDelayMS)*time.Millisecond)
	if err != nil {
		log.Fatal("Failed to create scraper", zap.Error(err))
	}

	ctx := context.Background()
	opts := []jobs.PipelineOption{
		jobs.WithConcurrency(cfg.IngestConcurrency),
		jobs.WithObserver(registry.RecordIngestion),
	}

	// The job store is optional; matching works from the vector store alone
	var store api.JobStore
	repo, err := connectJobStore(ctx, cfg)
	if err != nil {
		log.Warn("Neo4j job store unavailable, continuing without it",
			zap.String("uri", cfg.Neo4jURI),
			zap.Error(err),
		)
	} else {
		defer repo.Close()
		store = repo
		opts = append(opts, jobs.WithRecorder(repo))
	}

	pipeline := jobs.NewPipeline(scraper, llm, vectorstore.New(constants.JobsCollection), opts...)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Graph:       graph,
		Advisor:     advisor.New(llm),
		Jobs:        pipeline,
		JobStore:    store,
		Metrics:     registry,
		EmbedModel:  llm.EmbedModel(),
		CORSOrigins: cfg.CORSOrigins,
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// buildGraph creates the skills graph, seeding it from the embedded catalog
// or from cfg.SkillsSeedFile when one is given
func buildGraph(cfg *config.Config) (*skills.Graph, error) {
	graph := skills.NewGraph()
	if !cfg.SeedGraph {
		return graph, nil
	}

	var (
		catalog *skills.Catalog
		err     error
	)
	if cfg.SkillsSeedFile != "" {
		catalog, err = skills.LoadCatalog(cfg.SkillsSeedFile)
	} else {
		catalog, err = skills.DefaultCatalog()
	}
	if err != nil {
		return nil, err
	}

	if err := skills.Seed(graph, catalog); err != nil {
		return nil, err
	}
	return graph, nil
}

func connectJobStore(ctx context.Context, cfg *config.Config) (*jobstore.Repository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	driver, err := jobstore.Connect(connectCtx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}

	repo := jobstore.NewRepository(driver)
	if err := repo.EnsureSchema(connectCtx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}
