package strategy

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/clients"
	"github.com/wlplease/dashboard/internal/domain"
)

// LLM asks a language model for the recommendation. Any transport or parse
// failure is reported as an upstream error so the caller can fall back.
type LLM struct {
	client clients.LLMClient
	logger *zap.Logger
}

// NewLLM creates the model-backed generator.
func NewLLM(client clients.LLMClient, logger *zap.Logger) *LLM {
	return &LLM{client: client, logger: logger}
}

// Recommend prompts the model with the assessment and parses its JSON answer.
func (g *LLM) Recommend(ctx context.Context, in Inputs) (domain.StrategyRecommendation, error) {
	response, err := g.client.Chat(ctx, recommendationSystemPrompt, buildUserPrompt(in))
	if err != nil {
		return domain.StrategyRecommendation{}, errors.Wrapf(domain.ErrUpstream, "recommendation model call: %v", err)
	}

	rec, err := domain.RecommendationFromJSON(response)
	if err != nil {
		g.logger.Warn("model returned an unusable recommendation",
			zap.String("asset", in.Asset.String()),
			zap.Error(err))
		return domain.StrategyRecommendation{}, errors.Wrapf(domain.ErrUpstream, "recommendation parse: %v", err)
	}

	return *rec, nil
}
