package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type roadmapRequest struct {
	MissingSkills []string `json:"missing_skills"`
}

func (s *Server) roadmap(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.MissingSkills) == 0 {
		badRequest(c, "missing_skills list cannot be empty")
		return
	}
	valid := nonBlank(req.MissingSkills)
	if len(valid) == 0 {
		badRequest(c, "No valid skills provided")
		return
	}

	roadmap, err := s.deps.Advisor.GenerateRoadmap(c.Request.Context(), valid)
	if err != nil {
		s.respondError(c, "generating roadmap", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skills":  valid,
		"roadmap": roadmap,
		"message": fmt.Sprintf("Generated 4-week roadmap for %d skill(s)", len(valid)),
	})
}

type skillGapsRequest struct {
	UserSkills    []string `json:"user_skills"`
	MissingSkills []string `json:"missing_skills"`
}

func (s *Server) explainSkillGaps(c *gin.Context) {
	var req skillGapsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.MissingSkills) == 0 {
		badRequest(c, "missing_skills list cannot be empty")
		return
	}
	userSkills := nonBlank(req.UserSkills)
	missing := nonBlank(req.MissingSkills)
	if len(missing) == 0 {
		badRequest(c, "No valid missing skills provided")
		return
	}

	explanation, err := s.deps.Advisor.ExplainSkillGaps(c.Request.Context(), userSkills, missing)
	if err != nil {
		s.respondError(c, "generating skill gap explanation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_skills":    userSkills,
		"missing_skills": missing,
		"explanation":    explanation,
		"message": fmt.Sprintf("Generated explanation for %d skill gap(s) based on %d existing skill(s)",
			len(missing), len(userSkills)),
	})
}

type recommendationsRequest struct {
	UserSkills []string `json:"user_skills"`
	TargetRole string   `json:"target_role"`
}

func (s *Server) recommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	userSkills := nonBlank(req.UserSkills)
	if len(userSkills) == 0 {
		badRequest(c, "user_skills list cannot be empty")
		return
	}
	role := strings.TrimSpace(req.TargetRole)

	recs, err := s.deps.Advisor.RecommendSkills(c.Request.Context(), userSkills, role)
	if err != nil {
		s.respondError(c, "generating skill recommendations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_skills":     userSkills,
		"target_role":     role,
		"recommendations": recs,
		"message":         fmt.Sprintf("Generated recommendations based on %d existing skill(s)", len(userSkills)),
	})
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
