package services

import (
	"context"
	"time"

	"MenuLens/models"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
)

// Approximate pricing per 1M tokens. Estimates, updated periodically.
var llmTokenPricing = map[string]struct{ Input, Output float64 }{
	"google/gemini-2.5-flash": {Input: 0.15, Output: 0.6},
}

// Flat per-image pricing for image generation models.
var imageGenerationCost = map[string]float64{
	"dall-e-3": 0.04,
}

// LLMLogService persists one log document per AI collaborator call.
// All writes are best-effort: a failed log write is logged and swallowed.
type LLMLogService struct {
	FirestoreClient *firestore.Client
}

func NewLLMLogService(client *firestore.Client) *LLMLogService {
	return &LLMLogService{FirestoreClient: client}
}

// Save writes a completed log entry. Safe to call on a nil service.
func (s *LLMLogService) Save(ctx context.Context, entry *models.LLMCallLog) {
	if s == nil || s.FirestoreClient == nil {
		return
	}
	if entry.CompletedAt == 0 {
		entry.CompletedAt = time.Now().UnixMilli()
	}
	entry.DurationMs = entry.CompletedAt - entry.StartedAt
	entry.EstimatedCostUSD = estimateLLMCost(entry)

	_, _, err := s.FirestoreClient.Collection("llm_calls").Add(ctx, entry)
	if err != nil {
		logrus.Warnf("Failed to save LLM call log (%s): %v", entry.Operation, err)
	}
}

// GetCallsByMenu returns all log entries for one menu, internal use only.
func (s *LLMLogService) GetCallsByMenu(ctx context.Context, menuID string) ([]models.LLMCallLog, error) {
	docs, err := s.FirestoreClient.Collection("llm_calls").
		Where("menuId", "==", menuID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	var calls []models.LLMCallLog
	for _, doc := range docs {
		var call models.LLMCallLog
		if err := doc.DataTo(&call); err != nil {
			return nil, err
		}
		call.ID = doc.Ref.ID
		calls = append(calls, call)
	}
	return calls, nil
}

func estimateLLMCost(entry *models.LLMCallLog) float64 {
	if entry.Operation == models.LLMOperationImageGeneration {
		if entry.Success {
			return imageGenerationCost[entry.Model]
		}
		return 0
	}
	pricing, ok := llmTokenPricing[entry.Model]
	if !ok || entry.TokenUsage == nil {
		return 0
	}
	inputCost := float64(entry.TokenUsage.PromptTokens) / 1_000_000 * pricing.Input
	outputCost := float64(entry.TokenUsage.CompletionTokens) / 1_000_000 * pricing.Output
	return inputCost + outputCost
}
