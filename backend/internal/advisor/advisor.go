// Package advisor turns skill lists into prompts for the chat model:
// learning roadmaps, skill-gap explanations and next-skill recommendations.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"linkedinsight/backend/internal/adapter"
	"linkedinsight/backend/internal/constants"
	apperrors "linkedinsight/backend/pkg/errors"
	"linkedinsight/backend/pkg/logger"
)

// Generator is the subset of the LLM adapter used here
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMsg string, opts adapter.GenerateOptions) (*adapter.Response, error)
}

// Advisor produces career guidance text
type Advisor struct {
	llm    Generator
	logger *zap.Logger
}

// New creates an advisor backed by llm
func New(llm Generator) *Advisor {
	return &Advisor{
		llm:    llm,
		logger: logger.Get(),
	}
}

// GenerateRoadmap returns a 4-week Markdown learning roadmap for skills
func (a *Advisor) GenerateRoadmap(ctx context.Context, skills []string) (string, error) {
	valid := cleanSkills(skills)
	if len(valid) == 0 {
		return "", apperrors.NewInvalidArgument("missing_skills", "No valid skills provided in the list")
	}

	prompt := fmt.Sprintf(roadmapPrompt, strings.Join(valid, ", "))
	return a.run(ctx, "roadmap", roadmapSystem, prompt, constants.RoadmapMaxTokens)
}

// ExplainSkillGaps explains why the missing skills matter given the user's current ones
func (a *Advisor) ExplainSkillGaps(ctx context.Context, userSkills, missingSkills []string) (string, error) {
	missing := cleanSkills(missingSkills)
	if len(missing) == 0 {
		return "", apperrors.NewInvalidArgument("missing_skills", "missing_skills list cannot be empty")
	}

	current := "None specified"
	if have := cleanSkills(userSkills); len(have) > 0 {
		current = strings.Join(have, ", ")
	}

	prompt := fmt.Sprintf(skillGapPrompt, current, strings.Join(missing, ", "))
	return a.run(ctx, "skill gap explanation", skillGapSystem, prompt, constants.SkillGapMaxTokens)
}

// RecommendSkills suggests what to learn next, optionally for a target role
func (a *Advisor) RecommendSkills(ctx context.Context, userSkills []string, targetRole string) (string, error) {
	have := cleanSkills(userSkills)
	if len(have) == 0 {
		return "", apperrors.NewInvalidArgument("user_skills", "No valid skills provided")
	}

	roleContext := ""
	if role := strings.TrimSpace(targetRole); role != "" {
		roleContext = " for a " + role
	}

	prompt := fmt.Sprintf(recommendationsPrompt, strings.Join(have, ", "), roleContext)
	return a.run(ctx, "skill recommendations", recommendationsSystem, prompt, constants.RecommendationsMaxTokens)
}

func (a *Advisor) run(ctx context.Context, task, system, prompt string, maxTokens int) (string, error) {
	resp, err := a.llm.Generate(ctx, system, prompt, adapter.GenerateOptions{MaxTokens: maxTokens})
	if err != nil {
		a.logger.Error("Advisor request failed", zap.String("task", task), zap.Error(err))
		return "", apperrors.NewAdvisorFailed(task, err)
	}
	return resp.Content, nil
}

// cleanSkills trims entries and drops blanks, keeping order
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
