package models

// LLM call log operations and providers.
const (
	LLMOperationMenuExtraction  = "menu_extraction"
	LLMOperationThemeExtraction = "theme_extraction"
	LLMOperationImageGeneration = "image_generation"

	LLMProviderOpenRouter = "openrouter"
	LLMProviderOpenAI     = "openai"
)

type TokenUsage struct {
	PromptTokens     int `json:"promptTokens,omitempty" firestore:"promptTokens,omitempty"`
	CompletionTokens int `json:"completionTokens,omitempty" firestore:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens,omitempty" firestore:"totalTokens,omitempty"`
}

type LLMCallMetadata struct {
	ImageBase64Length int     `json:"imageBase64Length,omitempty" firestore:"imageBase64Length,omitempty"`
	Temperature       float32 `json:"temperature,omitempty" firestore:"temperature,omitempty"`
	ImageSize         string  `json:"imageSize,omitempty" firestore:"imageSize,omitempty"`
	Quality           string  `json:"quality,omitempty" firestore:"quality,omitempty"`
}

// LLMCallLog records one AI collaborator call with full observability:
// prompts, outputs, tokens, timing and estimated cost. Written best-effort,
// a failed log write never fails the operation being logged.
type LLMCallLog struct {
	ID        string `json:"id" firestore:"-"`
	SessionID string `json:"sessionId" firestore:"sessionId"`
	MenuID    string `json:"menuId,omitempty" firestore:"menuId,omitempty"`
	Operation string `json:"operation" firestore:"operation"`

	Provider string `json:"provider" firestore:"provider"`
	Model    string `json:"model" firestore:"model"`

	InputPrompt       string           `json:"inputPrompt" firestore:"inputPrompt"`
	InputSystemPrompt string           `json:"inputSystemPrompt,omitempty" firestore:"inputSystemPrompt,omitempty"`
	InputMetadata     *LLMCallMetadata `json:"inputMetadata,omitempty" firestore:"inputMetadata,omitempty"`

	OutputRaw      string `json:"outputRaw,omitempty" firestore:"outputRaw,omitempty"`
	OutputParsed   string `json:"outputParsed,omitempty" firestore:"outputParsed,omitempty"`
	OutputImageURL string `json:"outputImageUrl,omitempty" firestore:"outputImageUrl,omitempty"`

	TokenUsage *TokenUsage `json:"tokenUsage,omitempty" firestore:"tokenUsage,omitempty"`

	StartedAt   int64 `json:"startedAt" firestore:"startedAt"`
	CompletedAt int64 `json:"completedAt" firestore:"completedAt"`
	DurationMs  int64 `json:"durationMs" firestore:"durationMs"`

	Success          bool    `json:"success" firestore:"success"`
	Error            string  `json:"error,omitempty" firestore:"error,omitempty"`
	EstimatedCostUSD float64 `json:"estimatedCostUsd,omitempty" firestore:"estimatedCostUsd,omitempty"`
}
