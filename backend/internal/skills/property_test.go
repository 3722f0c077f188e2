package skills

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	apperrors "linkedinsight/backend/pkg/errors"
)

var propertyNodes = []string{"Go", "SQL", "Linux", "Docker", "Kubernetes", "Git", "Python", "Statistics"}

// applyEdges decodes each int as an ordered (skill, prerequisite) pair
func applyEdges(g *Graph, codes []int) (accepted, rejected int, ok bool) {
	n := len(propertyNodes)
	for _, code := range codes {
		skill := propertyNodes[code/n]
		prereq := propertyNodes[code%n]
		before := g.Stats().NumRelationships

		err := g.AddPrerequisite(skill, prereq)
		switch {
		case err == nil:
			accepted++
		case apperrors.IsErrorType(err, apperrors.ErrorTypeCycle):
			rejected++
			if g.Stats().NumRelationships != before {
				return accepted, rejected, false
			}
		case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation):
			if skill != prereq {
				return accepted, rejected, false
			}
		default:
			return accepted, rejected, false
		}
	}
	return accepted, rejected, true
}

func TestGraphInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	edgeCodes := gen.SliceOf(gen.IntRange(0, len(propertyNodes)*len(propertyNodes)-1))

	properties.Property("graph stays acyclic and rejected edges change nothing", prop.ForAll(
		func(codes []int) bool {
			g := NewGraph()
			if _, _, ok := applyEdges(g, codes); !ok {
				return false
			}
			return g.Stats().IsDAG
		},
		edgeCodes,
	))

	properties.Property("learning paths are topological and end at the target", prop.ForAll(
		func(codes []int) bool {
			g := NewGraph()
			if _, _, ok := applyEdges(g, codes); !ok {
				return false
			}
			for _, target := range g.AllSkills() {
				path, err := g.LearningPath(target)
				if err != nil || len(path) == 0 || path[len(path)-1] != target {
					return false
				}
				position := make(map[string]int, len(path))
				for i, name := range path {
					position[name] = i
				}
				for _, name := range path {
					prereqs, _ := g.Prerequisites(name)
					for _, p := range prereqs {
						pi, ok := position[p]
						if !ok || pi >= position[name] {
							return false
						}
					}
				}
			}
			return true
		},
		edgeCodes,
	))

	properties.Property("replaying the same edges is idempotent", prop.ForAll(
		func(codes []int) bool {
			once := NewGraph()
			applyEdges(once, codes)
			twice := NewGraph()
			applyEdges(twice, codes)
			applyEdges(twice, codes)
			return once.Stats() == twice.Stats()
		},
		edgeCodes,
	))

	properties.TestingRun(t)
}
