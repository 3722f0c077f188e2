package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("adding edge: %w", NewCycleDetected("Python", "Deep Learning"))

	assert.True(t, IsErrorType(err, ErrorTypeCycle))
	assert.False(t, IsErrorType(err, ErrorTypeValidation))
	assert.False(t, IsErrorType(fmt.Errorf("plain"), ErrorTypeCycle))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(NewInvalidArgument("skill", "Skill name must be a non-empty string")))
	assert.True(t, IsClientError(NewCycleDetected("a", "b")))
	assert.False(t, IsClientError(NewInvariantViolation("acyclic", "sort incomplete")))
	assert.False(t, IsClientError(NewScrapeFailed("indeed", "https://x", nil)))
}

func TestClientMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewInvalidArgument("skill", "A skill cannot be a prerequisite of itself"))
	assert.Equal(t, "A skill cannot be a prerequisite of itself", ClientMessage(err))

	assert.Equal(t, "plain", ClientMessage(fmt.Errorf("plain")))
}

func TestCycleDetectedMessage(t *testing.T) {
	err := NewCycleDetected("Python", "Deep Learning")
	assert.Contains(t, err.Detail(), "'Deep Learning' → 'Python'")
	assert.Contains(t, err.Error(), "[cycle]")
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(NewContextCancelled("scrape", context.Canceled)))
	assert.True(t, IsRetryable(NewAgentLLMFailed("gpt-4o-mini", 3, true, nil)))
	assert.False(t, IsRetryable(NewAgentLLMFailed("gpt-4o-mini", 3, false, nil)))
	assert.True(t, IsRetryable(NewGraphConnectionFailed("bolt://localhost:7687", nil)))
	assert.False(t, IsRetryable(NewInvalidArgument("skill", "bad")))
}
