package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeCycle represents a prerequisite edge that would close a cycle
	ErrorTypeCycle ErrorType = "cycle"
	// ErrorTypeGraph represents skills graph invariant violations
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeStore represents Neo4j job store errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeAgent represents LLM-related errors
	ErrorTypeAgent ErrorType = "agent"
	// ErrorTypeEmbedding represents embedding generation errors
	ErrorTypeEmbedding ErrorType = "embedding"
	// ErrorTypeScrape represents job board scraping errors
	ErrorTypeScrape ErrorType = "scrape"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrorType reports the category; promoted to every typed error embedding BaseError
func (e *BaseError) ErrorType() ErrorType {
	return e.Type
}

// Detail returns the bare message without the type prefix or wrapped cause
func (e *BaseError) Detail() string {
	return e.Message
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Skills graph errors

// ErrInvalidArgument is returned for empty or malformed skill names and self-prerequisites
type ErrInvalidArgument struct {
	*BaseError
	Field string
}

func NewInvalidArgument(field, message string) *ErrInvalidArgument {
	return &ErrInvalidArgument{
		BaseError: NewBaseError(ErrorTypeValidation, message, nil),
		Field:     field,
	}
}

// ErrCycleDetected is returned when a prerequisite edge would close a cycle
type ErrCycleDetected struct {
	*BaseError
	Skill        string
	Prerequisite string
}

func NewCycleDetected(skill, prerequisite string) *ErrCycleDetected {
	msg := fmt.Sprintf(
		"Adding prerequisite '%s' → '%s' would create a circular dependency. There is already a path from '%s' to '%s'.",
		prerequisite, skill, skill, prerequisite,
	)
	return &ErrCycleDetected{
		BaseError:    NewBaseError(ErrorTypeCycle, msg, nil),
		Skill:        skill,
		Prerequisite: prerequisite,
	}
}

// ErrInvariantViolation signals internal state that should be unreachable
type ErrInvariantViolation struct {
	*BaseError
	Invariant string
}

func NewInvariantViolation(invariant, detail string) *ErrInvariantViolation {
	return &ErrInvariantViolation{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("invariant violated (%s): %s", invariant, detail), nil),
		Invariant: invariant,
	}
}

// Agent Errors

// ErrAgentLLMFailed is returned when LLM request fails
type ErrAgentLLMFailed struct {
	*BaseError
	Model     string
	Attempts  int
	Retryable bool
}

func NewAgentLLMFailed(model string, attempts int, retryable bool, err error) *ErrAgentLLMFailed {
	return &ErrAgentLLMFailed{
		BaseError: NewBaseError(ErrorTypeAgent, fmt.Sprintf("LLM request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
		Retryable: retryable,
	}
}

// ErrAgentNoResponse is returned when LLM returns no response
var ErrAgentNoResponse = NewBaseError(ErrorTypeAgent, "no response from LLM", nil)

// ErrAdvisorFailed is returned when an advisor task cannot produce its text
type ErrAdvisorFailed struct {
	*BaseError
	Task string
}

func NewAdvisorFailed(task string, err error) *ErrAdvisorFailed {
	return &ErrAdvisorFailed{
		BaseError: NewBaseError(ErrorTypeAgent, fmt.Sprintf("failed to generate %s", task), err),
		Task:      task,
	}
}

// Embedding Errors

// ErrEmbeddingFailed is returned when the embeddings API call fails
type ErrEmbeddingFailed struct {
	*BaseError
	Model string
}

func NewEmbeddingFailed(model string, err error) *ErrEmbeddingFailed {
	return &ErrEmbeddingFailed{
		BaseError: NewBaseError(ErrorTypeEmbedding, fmt.Sprintf("failed to embed text with %s", model), err),
		Model:     model,
	}
}

// Scrape Errors

// ErrScrapeFailed is returned when a job board cannot be fetched or parsed
type ErrScrapeFailed struct {
	*BaseError
	Source string
	URL    string
}

func NewScrapeFailed(source, url string, err error) *ErrScrapeFailed {
	return &ErrScrapeFailed{
		BaseError: NewBaseError(ErrorTypeScrape, fmt.Sprintf("failed to scrape %s: %s", source, url), err),
		Source:    source,
		URL:       url,
	}
}

// Store Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a Neo4j query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type typed interface {
	error
	ErrorType() ErrorType
	Detail() string
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var t typed
	if errors.As(err, &t) {
		return t.ErrorType() == errType
	}
	return false
}

// IsClientError reports whether err was caused by caller input and should map to a 4xx
func IsClientError(err error) bool {
	return IsErrorType(err, ErrorTypeValidation) || IsErrorType(err, ErrorTypeCycle)
}

// ClientMessage returns the caller-facing message of a typed error
func ClientMessage(err error) string {
	var t typed
	if errors.As(err, &t) {
		return t.Detail()
	}
	return err.Error()
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	// Context errors are not retryable
	if IsErrorType(err, ErrorTypeContext) {
		return false
	}
	var llmErr *ErrAgentLLMFailed
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	// Network-bound collaborators are worth another attempt
	if IsErrorType(err, ErrorTypeStore) || IsErrorType(err, ErrorTypeScrape) || IsErrorType(err, ErrorTypeEmbedding) {
		return true
	}
	return false
}
