package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	apperrors "linkedinsight/backend/pkg/errors"
)

// Embed returns the embedding vector of text.
// Blank text yields an empty vector without calling the API.
func (a *LLMAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return []float32{}, nil
	}

	model := a.EmbedModel()
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		a.observe("embedding", "error")
		a.logger.Error("Embedding request failed", zap.String("model", model), zap.Error(err))
		return nil, apperrors.NewEmbeddingFailed(model, err)
	}
	if len(resp.Data) == 0 {
		a.observe("embedding", "error")
		return nil, apperrors.NewEmbeddingFailed(model, fmt.Errorf("empty embedding response"))
	}

	a.observe("embedding", "ok")
	return resp.Data[0].Embedding, nil
}
