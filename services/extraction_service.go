package services

import (
	"context"

	"MenuLens/models"
	"MenuLens/utils"

	"github.com/sirupsen/logrus"
)

// VisionExtractor is the AI collaborator contract for menu extraction and
// theme inference. OpenAIService is the production implementation.
type VisionExtractor interface {
	ExtractMenuWithVision(ctx context.Context, sessionID, imageBase64 string) (*models.MenuPayload, error)
	ExtractMenuTheme(ctx context.Context, sessionID string, menu *models.MenuPayload) (*models.MenuTheme, error)
}

// MenuSaver is the persistence slice the orchestrator needs. MenuService is
// the Firestore-backed implementation.
type MenuSaver interface {
	SaveMenuInternal(ctx context.Context, sessionID string, menu *models.MenuPayload) (string, error)
}

// ImageScheduler hands a batch off to the background worker.
type ImageScheduler interface {
	Enqueue(job ImageGenerationJob)
}

// ExtractionResult pairs the new document id with the extracted payload.
// The payload is the pre-truncation extraction output: callers see the full
// result even when the persisted copy was truncated to fit the budget.
type ExtractionResult struct {
	MenuID string              `json:"menuId"`
	Menu   *models.MenuPayload `json:"menu"`
}

// ExtractionService drives the end-to-end ingestion flow: vision extraction,
// theme inference, persistence, and scheduling of image generation.
type ExtractionService struct {
	Extractor VisionExtractor
	Store     MenuSaver
	Scheduler ImageScheduler
}

// NewExtractionService wires the orchestrator with its collaborators.
func NewExtractionService(extractor VisionExtractor, store MenuSaver, scheduler ImageScheduler) *ExtractionService {
	return &ExtractionService{
		Extractor: extractor,
		Store:     store,
		Scheduler: scheduler,
	}
}

// ExtractAndSave turns a menu photo into a persisted structured menu and
// schedules dish image generation in the background. The response returns as
// soon as the menu is saved; no image exists yet at that point.
func (s *ExtractionService) ExtractAndSave(ctx context.Context, sessionID, imageBase64 string) (*ExtractionResult, error) {
	if sessionID == "" {
		return nil, utils.NewValidationError("sessionId is required")
	}
	if imageBase64 == "" {
		return nil, utils.NewValidationError("imageBase64 is required")
	}

	// An unreadable or non-menu photo yields an empty-categories payload,
	// which is a valid result and is persisted as an empty menu.
	menu, err := s.Extractor.ExtractMenuWithVision(ctx, sessionID, imageBase64)
	if err != nil {
		return nil, utils.NewExtractionError(err)
	}

	theme, err := s.Extractor.ExtractMenuTheme(ctx, sessionID, menu)
	if err != nil {
		logrus.Warnf("Theme extraction failed, using default theme: %v", err)
		theme = models.DefaultMenuTheme()
	}

	menuID, err := s.Store.SaveMenuInternal(ctx, sessionID, menu)
	if err != nil {
		return nil, err
	}

	// Schedule only when there is something to draw.
	if menu.TotalItems() > 0 {
		s.Scheduler.Enqueue(ImageGenerationJob{
			MenuID:    menuID,
			SessionID: sessionID,
			Theme:     theme,
		})
	}

	return &ExtractionResult{MenuID: menuID, Menu: menu}, nil
}
