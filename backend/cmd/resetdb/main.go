package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"linkedinsight/backend/internal/jobstore"
	"linkedinsight/backend/pkg/config"
	"linkedinsight/backend/pkg/logger"
)

func main() {
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

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
	log.Info("Starting job store reset...", zap.String("uri", cfg.Neo4jURI))

	// Warning prompt
	if !*skipConfirm {
		log.Warn("This will DELETE ALL jobs and skills from Neo4j!")
		log.Warn("This action cannot be undone.")
		// Use fmt.Print for user input prompt (needs to go to stdout)
		fmt.Print("Are you sure you want to continue? (yes/no): ")
		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" {
			log.Info("Aborted.")
			os.Exit(0)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	driver, err := jobstore.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := jobstore.NewRepository(driver)
	defer repo.Close()

	log.Info("Deleting all data and rebuilding schema...")
	if err := repo.Reset(ctx); err != nil {
		log.Fatal("Failed to reset job store", zap.Error(err))
	}

	count, err := repo.CountJobs(ctx)
	if err != nil {
		log.Fatal("Failed to verify reset", zap.Error(err))
	}
	log.Info("Job store reset complete", zap.Int("jobs", count))
}
