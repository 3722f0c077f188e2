package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"linkedinsight/backend/internal/jobs"
	apperrors "linkedinsight/backend/pkg/errors"
)

// resolveSkill maps a user-supplied name onto the stored spelling:
// exact match first, then case-insensitive, else the trimmed input
func (s *Server) resolveSkill(name string) string {
	name = strings.TrimSpace(name)
	all := s.deps.Graph.AllSkills()
	for _, skill := range all {
		if skill == name {
			return skill
		}
	}
	for _, skill := range all {
		if strings.EqualFold(skill, name) {
			return skill
		}
	}
	return name
}

// skillQuery reads the skill query parameter, rejecting blanks
func skillQuery(c *gin.Context) (string, bool) {
	skill := c.Query("skill")
	if strings.TrimSpace(skill) == "" {
		badRequest(c, "Skill parameter cannot be empty")
		return "", false
	}
	return skill, true
}

func (s *Server) relatedSkills(c *gin.Context) {
	raw, ok := skillQuery(c)
	if !ok {
		return
	}
	skill := s.resolveSkill(raw)

	related, err := s.deps.Graph.Related(skill)
	if err != nil {
		s.respondError(c, "retrieving related skills", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skill":         skill,
		"prerequisites": related.Prerequisites,
		"successors":    related.Successors,
		"all_related":   related.AllRelated,
	})
}

func (s *Server) prerequisites(c *gin.Context) {
	raw, ok := skillQuery(c)
	if !ok {
		return
	}
	skill := s.resolveSkill(raw)

	prereqs, err := s.deps.Graph.Prerequisites(skill)
	if err != nil {
		s.respondError(c, "retrieving prerequisites", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skill":         skill,
		"prerequisites": prereqs,
		"count":         len(prereqs),
	})
}

func (s *Server) learningPath(c *gin.Context) {
	raw, ok := skillQuery(c)
	if !ok {
		return
	}
	skill := s.resolveSkill(raw)

	path, err := s.deps.Graph.LearningPath(skill)
	if err != nil {
		s.respondError(c, "generating learning path", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"target_skill":  skill,
		"learning_path": path,
		"path_length":   len(path),
		"message":       pathMessage(skill, path),
	})
}

func pathMessage(skill string, path []string) string {
	switch len(path) {
	case 0:
		return fmt.Sprintf("No learning path found for '%s'. The skill may not exist in the graph.", skill)
	case 1:
		return fmt.Sprintf("'%s' has no prerequisites. You can start learning it directly!", skill)
	default:
		return fmt.Sprintf("Learn %d skills in order: %s", len(path), strings.Join(path, " → "))
	}
}

func (s *Server) allSkills(c *gin.Context) {
	all := s.deps.Graph.AllSkills()
	c.JSON(http.StatusOK, gin.H{
		"skills": all,
		"count":  len(all),
	})
}

func (s *Server) graphStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Graph.Stats())
}

type addSkillRequest struct {
	Skill string `json:"skill"`
}

func (s *Server) addSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Skill) == "" {
		badRequest(c, "Skill name cannot be empty")
		return
	}

	skill := strings.TrimSpace(req.Skill)
	if err := s.deps.Graph.AddSkill(skill); err != nil {
		s.respondError(c, "adding skill", err)
		return
	}
	s.refreshGraphMetrics()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"skill":   skill,
		"message": fmt.Sprintf("Skill '%s' added successfully", skill),
	})
}

type addPrerequisiteRequest struct {
	Skill        string `json:"skill"`
	Prerequisite string `json:"prerequisite"`
}

func (s *Server) addPrerequisite(c *gin.Context) {
	var req addPrerequisiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Skill) == "" {
		badRequest(c, "Skill name cannot be empty")
		return
	}
	if strings.TrimSpace(req.Prerequisite) == "" {
		badRequest(c, "Prerequisite name cannot be empty")
		return
	}

	skill := strings.TrimSpace(req.Skill)
	prerequisite := strings.TrimSpace(req.Prerequisite)

	if err := s.deps.Graph.AddPrerequisite(skill, prerequisite); err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeCycle) {
			s.deps.Metrics.RecordCycleRejection()
			// Endpoints may have been created before the edge was refused
			s.refreshGraphMetrics()
		}
		s.respondError(c, "adding prerequisite", err)
		return
	}
	s.refreshGraphMetrics()

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"skill":        skill,
		"prerequisite": prerequisite,
		"message":      fmt.Sprintf("Prerequisite relationship added: '%s' → '%s'", prerequisite, skill),
	})
}

type extractRequest struct {
	Text string `json:"text"`
}

func (s *Server) extractSkills(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(c, "Text cannot be empty")
		return
	}

	c.JSON(http.StatusOK, jobs.ExtractSkills(req.Text))
}
