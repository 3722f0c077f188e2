package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linkedinsight/backend/pkg/config"
)

func TestBuildGraph_Unseeded(t *testing.T) {
	graph, err := buildGraph(&config.Config{SeedGraph: false})
	require.NoError(t, err)
	assert.Empty(t, graph.AllSkills())
}

func TestBuildGraph_DefaultCatalog(t *testing.T) {
	graph, err := buildGraph(&config.Config{SeedGraph: true})
	require.NoError(t, err)

	stats := graph.Stats()
	assert.True(t, stats.IsDAG)
	assert.NotZero(t, stats.NumRelationships)
}

func TestBuildGraph_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	catalog := `
skills: [Go]
prerequisites:
  - {skill: Kubernetes, prerequisite: Docker}
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	graph, err := buildGraph(&config.Config{SeedGraph: true, SkillsSeedFile: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker", "Go", "Kubernetes"}, graph.AllSkills())
}

func TestBuildGraph_CyclicSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	catalog := `
prerequisites:
  - {skill: B, prerequisite: A}
  - {skill: A, prerequisite: B}
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	_, err := buildGraph(&config.Config{SeedGraph: true, SkillsSeedFile: path})
	assert.Error(t, err)
}

func TestBuildGraph_MissingSeedFile(t *testing.T) {
	_, err := buildGraph(&config.Config{SeedGraph: true, SkillsSeedFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
