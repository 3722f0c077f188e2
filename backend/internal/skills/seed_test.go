package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "linkedinsight/backend/pkg/errors"
)

func TestDefaultCatalogSeedsAcyclicGraph(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, catalog.Skills)
	assert.GreaterOrEqual(t, len(catalog.Prerequisites), 30)

	g := NewGraph()
	require.NoError(t, Seed(g, catalog))

	stats := g.Stats()
	assert.True(t, stats.IsDAG)
	assert.Equal(t, len(catalog.Prerequisites), stats.NumRelationships)
	assert.GreaterOrEqual(t, stats.NumSkills, 30)

	path, err := g.LearningPath("Deep Learning")
	require.NoError(t, err)
	assert.Equal(t, "Deep Learning", path[len(path)-1])
	assert.Contains(t, path, "Python")
	assert.Contains(t, path, "Machine Learning")
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
skills: [Go]
prerequisites:
  - {skill: gRPC, prerequisite: Go}
`), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	g := NewGraph()
	require.NoError(t, Seed(g, catalog))
	assert.Equal(t, []string{"Go", "gRPC"}, g.AllSkills())
}

func TestSeed_StopsOnCycle(t *testing.T) {
	catalog := &Catalog{Prerequisites: []Edge{
		{Skill: "B", Prerequisite: "A"},
		{Skill: "A", Prerequisite: "B"},
	}}

	err := Seed(NewGraph(), catalog)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeCycle))
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("skills: {not: [a list"))
	assert.Error(t, err)
}
