// Package skills implements the skills dependency graph: a DAG over skill
// names whose edges mean "prerequisite must be learned before skill".
//
// A Graph is safe for concurrent use. Every mutation performs its validation,
// reachability check and insert under a single write lock, so two concurrent
// AddPrerequisite calls can never jointly introduce a cycle.
package skills

import (
	"sort"
	"strings"
	"sync"

	apperrors "linkedinsight/backend/pkg/errors"
)

// Related groups the direct neighbours of a skill
type Related struct {
	Prerequisites []string `json:"prerequisites"`
	Successors    []string `json:"successors"`
	AllRelated    []string `json:"all_related"`
}

// Stats describes the structure of the graph
type Stats struct {
	NumSkills        int  `json:"num_skills"`
	NumRelationships int  `json:"num_relationships"`
	IsDAG            bool `json:"is_dag"`
}

type set map[string]struct{}

// Graph is an in-memory directed graph of skills.
// Edges are stored in both directions: out[p] holds skills that require p,
// in[s] holds the prerequisites of s.
type Graph struct {
	mu    sync.RWMutex
	out   map[string]set
	in    map[string]set
	edges int
}

// NewGraph creates an empty skills graph
func NewGraph() *Graph {
	return &Graph{
		out: make(map[string]set),
		in:  make(map[string]set),
	}
}

// AddSkill inserts a skill node if it is not already present
func (g *Graph) AddSkill(name string) error {
	name, err := normalize("skill", name, "Skill name")
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureNode(name)
	return nil
}

// AddPrerequisite records that prerequisite must be learned before skill.
// Both nodes are created if missing, even when the edge is then rejected
// because it would close a cycle.
func (g *Graph) AddPrerequisite(skill, prerequisite string) error {
	skill, err := normalize("skill", skill, "Skill name")
	if err != nil {
		return err
	}
	prerequisite, err = normalize("prerequisite", prerequisite, "Prerequisite name")
	if err != nil {
		return err
	}
	if skill == prerequisite {
		return apperrors.NewInvalidArgument("prerequisite", "A skill cannot be a prerequisite of itself")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.ensureNode(skill)
	g.ensureNode(prerequisite)

	if _, exists := g.out[prerequisite][skill]; exists {
		return nil
	}

	// A path skill ⇝ prerequisite means skill is already (transitively)
	// required by prerequisite; the new edge would close a loop.
	if g.hasPath(skill, prerequisite) {
		return apperrors.NewCycleDetected(skill, prerequisite)
	}

	g.out[prerequisite][skill] = struct{}{}
	g.in[skill][prerequisite] = struct{}{}
	g.edges++
	return nil
}

// Prerequisites returns the direct prerequisites of skill, sorted.
// Unknown skills yield an empty list.
func (g *Graph) Prerequisites(skill string) ([]string, error) {
	skill, err := normalize("skill", skill, "Skill name")
	if err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.in[skill]), nil
}

// LearningPath returns every direct and transitive prerequisite of target in
// an order where each prerequisite precedes the skills depending on it,
// ending with target itself. Unknown targets yield an empty list.
func (g *Graph) LearningPath(target string) ([]string, error) {
	target, err := normalize("skill", target, "Target skill name")
	if err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.out[target]; !ok {
		return []string{}, nil
	}
	if len(g.in[target]) == 0 {
		return []string{target}, nil
	}

	ancestors := g.ancestors(target)
	path := g.topoSort(ancestors)

	if len(path) != len(ancestors) || path[len(path)-1] != target {
		return nil, apperrors.NewInvariantViolation("acyclic",
			"topological sort of the prerequisites of '"+target+"' did not complete")
	}
	return path, nil
}

// Related returns the direct prerequisites and direct successors of skill
func (g *Graph) Related(skill string) (Related, error) {
	skill, err := normalize("skill", skill, "Skill name")
	if err != nil {
		return Related{}, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	related := Related{
		Prerequisites: sortedKeys(g.in[skill]),
		Successors:    sortedKeys(g.out[skill]),
	}

	union := make(set, len(related.Prerequisites)+len(related.Successors))
	for _, s := range related.Prerequisites {
		union[s] = struct{}{}
	}
	for _, s := range related.Successors {
		union[s] = struct{}{}
	}
	related.AllRelated = sortedKeys(union)
	return related, nil
}

// AllSkills returns every skill in the graph, sorted
func (g *Graph) AllSkills() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.out))
	for name := range g.out {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats reports node and edge counts. IsDAG is recomputed on every call.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	all := make(set, len(g.out))
	for name := range g.out {
		all[name] = struct{}{}
	}

	return Stats{
		NumSkills:        len(g.out),
		NumRelationships: g.edges,
		IsDAG:            len(g.topoSort(all)) == len(all),
	}
}

func (g *Graph) ensureNode(name string) {
	if _, ok := g.out[name]; ok {
		return
	}
	g.out[name] = make(set)
	g.in[name] = make(set)
}

// hasPath reports whether to is reachable from from along edge direction.
// Caller must hold the lock.
func (g *Graph) hasPath(from, to string) bool {
	visited := set{from: {}}
	stack := []string{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == to {
			return true
		}
		for next := range g.out[current] {
			if _, seen := visited[next]; !seen {
				visited[next] = struct{}{}
				stack = append(stack, next)
			}
		}
	}
	return false
}

// ancestors walks prerequisite edges backwards from target, target included
func (g *Graph) ancestors(target string) set {
	found := set{target: {}}
	queue := []string{target}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for prereq := range g.in[current] {
			if _, seen := found[prereq]; !seen {
				found[prereq] = struct{}{}
				queue = append(queue, prereq)
			}
		}
	}
	return found
}

// topoSort orders the subgraph induced by nodes with Kahn's algorithm.
// Ready nodes are taken in lexicographic order so the output is reproducible.
// A result shorter than nodes means the subgraph has a cycle.
func (g *Graph) topoSort(nodes set) []string {
	inDegree := make(map[string]int, len(nodes))
	for node := range nodes {
		count := 0
		for prereq := range g.in[node] {
			if _, ok := nodes[prereq]; ok {
				count++
			}
		}
		inDegree[node] = count
	}

	var ready []string
	for node, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, node)
		}
	}
	sort.Strings(ready)

	sorted := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		sorted = append(sorted, current)

		var released []string
		for next := range g.out[current] {
			if _, ok := nodes[next]; !ok {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				released = append(released, next)
			}
		}
		if len(released) > 0 {
			ready = append(ready, released...)
			sort.Strings(ready)
		}
	}
	return sorted
}

// normalize trims name and rejects blank input
func normalize(field, name, label string) (string, error) {
	if name == "" {
		return "", apperrors.NewInvalidArgument(field, label+" must be a non-empty string")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewInvalidArgument(field, label+" cannot be empty or whitespace only")
	}
	return name, nil
}

func sortedKeys(s set) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
