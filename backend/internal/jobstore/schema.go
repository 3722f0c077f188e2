package jobstore

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "linkedinsight/backend/pkg/errors"
)

var constraints = []string{
	"CREATE CONSTRAINT job_id_unique IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE",
	"CREATE CONSTRAINT skill_name_unique IF NOT EXISTS FOR (k:Skill) REQUIRE k.name IS UNIQUE",
}

var indexes = []string{
	"CREATE INDEX job_company IF NOT EXISTS FOR (j:Job) ON (j.company)",
	"CREATE INDEX job_source IF NOT EXISTS FOR (j:Job) ON (j.source)",
}

var dropStatements = []string{
	"DROP CONSTRAINT job_id_unique IF EXISTS",
	"DROP CONSTRAINT skill_name_unique IF EXISTS",
	"DROP INDEX job_company IF EXISTS",
	"DROP INDEX job_source IF EXISTS",
}

// EnsureSchema creates constraints and indexes if missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return apperrors.NewGraphQueryFailed(constraint, err)
		}
	}

	for _, index := range indexes {
		if _, err := session.Run(ctx, index, nil); err != nil {
			r.logger.Warn("Failed to create index", zap.String("index", index), zap.Error(err))
		}
	}
	return nil
}

// Reset deletes every job and skill node, drops the schema and recreates it
func (r *Repository) Reset(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (n)
		WHERE n:Job OR n:Skill
		DETACH DELETE n
	`, nil)
	if err != nil {
		return apperrors.NewGraphQueryFailed("delete jobs and skills", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return apperrors.NewGraphQueryFailed("delete jobs and skills", err)
	}
	r.logger.Info("Deleted job store data", zap.Int("nodes", summary.Counters().NodesDeleted()))

	for _, stmt := range dropStatements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			r.logger.Warn("Failed to drop schema item", zap.String("statement", stmt), zap.Error(err))
		}
	}

	return r.EnsureSchema(ctx)
}
