package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"MenuLens/config/environment"
	"MenuLens/models"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	visionModel       = "google/gemini-2.5-flash"
	imageModel        = "dall-e-3"
	imageSize         = "1024x1024"
)

const menuExtractionSystemPrompt = `You help people at restaurants visualize dishes from text-only menus. Extract each dish so we can generate a realistic image of how it will look when served.

<output_format>
Return valid JSON only:
{
  "restaurantName": "string or null if not visible",
  "branding": {
    "primaryColor": "#hex or null",
    "accentColor": "#hex or null"
  },
  "categories": [
    {
      "name": "section name",
      "items": [
        {
          "name": "complete dish name",
          "description": "ingredients, preparation method, accompaniments",
          "price": "as shown (e.g., $12.99)"
        }
      ]
    }
  ]
}
</output_format>

<main_rule>
Each dish name must be complete enough to visualize. When you see variants under a category, create full names:
- "Tacos: Pastor, Carnitas, Bistec" becomes: "Tacos al Pastor", "Tacos de Carnitas", "Tacos de Bistec"
- "Pizza - Pepperoni, Margherita" becomes: "Pizza de Pepperoni", "Pizza Margherita"
- "Ice Cream (Vanilla, Chocolate)" becomes: "Vanilla Ice Cream", "Chocolate Ice Cream"
</main_rule>

<preserve_details>
Keep details that affect how the dish looks:
- Cooking method: "grilled", "fried", "baked", "steamed"
- Presentation: "in a molcajete", "on a sizzling skillet", "in a clay pot"
- Accompaniments: "with rice and beans", "served with fries"
- Size/portions: "6pc", "12oz", "serves 2"
</preserve_details>

<do_not_extract>
- Section headers alone ("APPETIZERS", "DRINKS")
- Add-on modifiers ("Add bacon +$2")
- Placeholder text ("...", "and more")
</do_not_extract>

<error_handling>
If the image is blurry, not a menu, or unreadable, return:
{ "restaurantName": null, "branding": null, "categories": [] }
Do not invent dishes.
</error_handling>`

const menuExtractionUserPrompt = "Extract all menu items from this image. Create complete dish names for variant lists (e.g., 'Tacos: Chicken, Beef' becomes 'Chicken Tacos', 'Beef Tacos')."

const themeExtractionSystemPrompt = `Analyze this menu to determine how the food will look when served. Your output helps generate realistic images of dishes.

<output_format>
Return valid JSON:
{
  "cuisineType": "primary cuisine (Mexican, Italian, Japanese, American, Thai, etc.)",
  "cuisineSubtype": "regional style if specific (Oaxacan, Neapolitan, Sichuan, etc.) or null",
  "presentationStyle": "how food is typically plated",
  "plateDescription": "GENERIC plating style for this cuisine (plate type, garnish style, sauce presentation) - DO NOT mention any specific dish name or ingredients, keep it applicable to any dish from this menu",
  "priceRange": "budget | mid-range | upscale (infer from prices)",
  "surfaceMaterial": "inferred surface the plate sits on (rustic wood, white marble, dark slate, etc.)",
  "lightingStyle": "natural | restaurant | bright | dramatic - infer from ambiance"
}
</output_format>

<inference_rules>
- Price is the strongest signal for presentation style
- Same cuisine at different price points looks very different
- A $5 taco and a $18 taco should generate different images
</inference_rules>`

// OpenAIService wraps the AI collaborators: vision extraction and theme
// inference over the OpenRouter endpoint, image generation over the OpenAI
// images endpoint. Both are opaque contracts that either return a result or
// an error.
type OpenAIService struct {
	VisionClient *openai.Client
	ImageClient  *openai.Client
	LogService   *LLMLogService
}

// NewOpenAIService creates a new instance of OpenAIService.
func NewOpenAIService(logService *LLMLogService) *OpenAIService {
	visionConfig := openai.DefaultConfig(environment.GetOpenRouterKey())
	visionConfig.BaseURL = openRouterBaseURL

	return &OpenAIService{
		VisionClient: openai.NewClientWithConfig(visionConfig),
		ImageClient:  openai.NewClient(environment.GetOpenAIKey()),
		LogService:   logService,
	}
}

var codeFenceRegexp = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?```$")

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// around JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	if match := codeFenceRegexp.FindStringSubmatch(cleaned); match != nil {
		cleaned = strings.TrimSpace(match[1])
	}
	return cleaned
}

// ExtractMenuWithVision sends the menu photo to the vision model and parses
// the structured menu it returns. An unreadable or non-menu photo comes back
// as an empty-categories payload, which is a valid result.
func (s *OpenAIService) ExtractMenuWithVision(ctx context.Context, sessionID, imageBase64 string) (*models.MenuPayload, error) {
	imageURL := imageBase64
	if !strings.HasPrefix(imageBase64, "data:") {
		imageURL = "data:image/png;base64," + imageBase64
	}

	logEntry := &models.LLMCallLog{
		SessionID:         sessionID,
		Operation:         models.LLMOperationMenuExtraction,
		Provider:          models.LLMProviderOpenRouter,
		Model:             visionModel,
		InputPrompt:       menuExtractionUserPrompt,
		InputSystemPrompt: menuExtractionSystemPrompt,
		InputMetadata: &models.LLMCallMetadata{
			ImageBase64Length: len(imageBase64),
			Temperature:       0.1,
		},
		StartedAt: time.Now().UnixMilli(),
	}

	resp, err := s.VisionClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       visionModel,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: menuExtractionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: menuExtractionUserPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
	})
	if err != nil {
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		err := errors.New("empty response from vision model")
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return nil, err
	}

	content := resp.Choices[0].Message.Content
	cleaned := cleanJSONResponse(content)

	var menu models.MenuPayload
	if err := json.Unmarshal([]byte(cleaned), &menu); err != nil {
		logEntry.OutputRaw = content
		logEntry.Error = "invalid menu data: " + err.Error()
		s.LogService.Save(ctx, logEntry)
		return nil, errors.New("invalid menu data: " + err.Error())
	}
	menu.Normalize()

	parsed, _ := json.Marshal(menu)
	logEntry.Success = true
	logEntry.OutputRaw = content
	logEntry.OutputParsed = string(parsed)
	logEntry.TokenUsage = &models.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	s.LogService.Save(ctx, logEntry)

	return &menu, nil
}

// ExtractMenuTheme infers the visual theme from the already-extracted menu,
// not the raw photo. Callers fall back to the default theme on error.
func (s *OpenAIService) ExtractMenuTheme(ctx context.Context, sessionID string, menu *models.MenuPayload) (*models.MenuTheme, error) {
	menuJSON, err := json.MarshalIndent(menu, "", "  ")
	if err != nil {
		return nil, err
	}
	userPrompt := "Analyze this menu and determine how the food should look when served:\n\n" + string(menuJSON)

	logEntry := &models.LLMCallLog{
		SessionID:         sessionID,
		Operation:         models.LLMOperationThemeExtraction,
		Provider:          models.LLMProviderOpenRouter,
		Model:             visionModel,
		InputPrompt:       userPrompt,
		InputSystemPrompt: themeExtractionSystemPrompt,
		InputMetadata:     &models.LLMCallMetadata{Temperature: 0.3},
		StartedAt:         time.Now().UnixMilli(),
	}

	resp, err := s.VisionClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       visionModel,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: themeExtractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return nil, err
	}

	content := "{}"
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		content = resp.Choices[0].Message.Content
	}
	cleaned := cleanJSONResponse(content)

	var theme models.MenuTheme
	if err := json.Unmarshal([]byte(cleaned), &theme); err != nil {
		logEntry.OutputRaw = content
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return nil, err
	}

	// Fill gaps the model left open rather than failing the extraction.
	fallback := models.DefaultMenuTheme()
	if theme.CuisineType == "" {
		theme.CuisineType = fallback.CuisineType
	}
	if theme.PresentationStyle == "" {
		theme.PresentationStyle = fallback.PresentationStyle
	}
	if theme.PlateDescription == "" {
		theme.PlateDescription = fallback.PlateDescription
	}
	if theme.PriceRange == "" {
		theme.PriceRange = fallback.PriceRange
	}

	parsed, _ := json.Marshal(theme)
	logEntry.Success = true
	logEntry.OutputRaw = content
	logEntry.OutputParsed = string(parsed)
	logEntry.TokenUsage = &models.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	s.LogService.Save(ctx, logEntry)

	return &theme, nil
}

// GenerateDishImage classifies the dish, builds the photography prompt and
// asks the image model for one picture. The returned URL is hosted by the
// provider and expires after roughly a day, so only the URL is stored.
func (s *OpenAIService) GenerateDishImage(ctx context.Context, sessionID, menuID string, item models.SelectedItem, theme *models.MenuTheme) (string, error) {
	dishType := ClassifyDishType(item.Name, item.Description)
	prompt := BuildDishPrompt(DishPromptParams{
		Name:        item.Name,
		Description: item.Description,
		Theme:       theme,
		DishType:    dishType,
	})

	logEntry := &models.LLMCallLog{
		SessionID:   sessionID,
		MenuID:      menuID,
		Operation:   models.LLMOperationImageGeneration,
		Provider:    models.LLMProviderOpenAI,
		Model:       imageModel,
		InputPrompt: prompt,
		InputMetadata: &models.LLMCallMetadata{
			ImageSize: imageSize,
			Quality:   "standard",
		},
		StartedAt: time.Now().UnixMilli(),
	}

	resp, err := s.ImageClient.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		logrus.Errorf("Image generation failed for %q: %v", item.Name, err)
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return "", err
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		err := errors.New("no image URL returned from image model")
		logEntry.Error = err.Error()
		s.LogService.Save(ctx, logEntry)
		return "", err
	}

	imageURL := resp.Data[0].URL
	logEntry.Success = true
	logEntry.OutputImageURL = imageURL
	s.LogService.Save(ctx, logEntry)

	return imageURL, nil
}
