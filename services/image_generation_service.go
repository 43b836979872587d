package services

import (
	"context"
	"fmt"
	"sync"

	"MenuLens/models"

	"github.com/sirupsen/logrus"
)

// ImageGenerator is the image-generation collaborator contract.
type ImageGenerator interface {
	GenerateDishImage(ctx context.Context, sessionID, menuID string, item models.SelectedItem, theme *models.MenuTheme) (string, error)
}

// MenuStore is the slice of persistence the worker needs. MenuService is the
// Firestore-backed implementation.
type MenuStore interface {
	GetMenuInternal(ctx context.Context, menuID string) (*models.MenuDocument, error)
	CreatePendingImageRecords(ctx context.Context, menuID, sessionID string, items []models.SelectedItem) error
	UpdateImageStatus(ctx context.Context, menuID, itemKey, imageStatus, imageURL, errorMessage string) error
}

// ImageGenerationJob is one scheduled batch: generate images for the first N
// items of a persisted menu.
type ImageGenerationJob struct {
	MenuID    string
	SessionID string
	Theme     *models.MenuTheme
}

// SelectItemsForImageGeneration takes the first maxImages items scanning
// categories and items in document order, keyed by their position. Never by
// confidence, price or randomness.
func SelectItemsForImageGeneration(categories []models.MenuCategory, maxImages int) []models.SelectedItem {
	var items []models.SelectedItem

	for catIndex := 0; catIndex < len(categories) && len(items) < maxImages; catIndex++ {
		cat := categories[catIndex]
		for itemIndex := 0; itemIndex < len(cat.Items) && len(items) < maxImages; itemIndex++ {
			item := cat.Items[itemIndex]
			items = append(items, models.SelectedItem{
				Key:         fmt.Sprintf("cat:%d:item:%d", catIndex, itemIndex),
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
			})
		}
	}

	return items
}

// ImageGenerationService runs dish image generation as a detached background
// task: callers enqueue a job and get on with their response; a worker
// goroutine fans the job out into independent per-item generations.
type ImageGenerationService struct {
	Store     MenuStore
	Generator ImageGenerator

	jobs chan ImageGenerationJob
	once sync.Once
}

// NewImageGenerationService initializes the service with its collaborators.
func NewImageGenerationService(store MenuStore, generator ImageGenerator) *ImageGenerationService {
	return &ImageGenerationService{
		Store:     store,
		Generator: generator,
		jobs:      make(chan ImageGenerationJob, 64),
	}
}

// StartWorker launches the background consumer. Call once at startup.
func (s *ImageGenerationService) StartWorker() {
	s.once.Do(func() {
		go func() {
			logrus.Info("Image generation worker started")
			for job := range s.jobs {
				s.GenerateAllImages(context.Background(), job)
			}
		}()
	})
}

// Enqueue schedules a job and returns immediately. Fire-and-forget from the
// caller's perspective: no result is reported back, progress is observable
// only through the image generation records.
func (s *ImageGenerationService) Enqueue(job ImageGenerationJob) {
	s.jobs <- job
}

// GenerateAllImages processes one job: re-derive the selection against the
// persisted (possibly truncated) menu, create pending records, then generate
// every image concurrently. Item outcomes are independent; one failure never
// blocks or fails the others, and the batch itself has no overall result.
func (s *ImageGenerationService) GenerateAllImages(ctx context.Context, job ImageGenerationJob) {
	menu, err := s.Store.GetMenuInternal(ctx, job.MenuID)
	if err != nil {
		logrus.Errorf("Failed to load menu %s for image generation: %v", job.MenuID, err)
		return
	}
	if menu == nil {
		logrus.Errorf("Menu not found for image generation: %s", job.MenuID)
		return
	}

	itemsToGenerate := SelectItemsForImageGeneration(menu.Categories, MaxImagesPerMenu)
	if len(itemsToGenerate) == 0 {
		return
	}

	if err := s.Store.CreatePendingImageRecords(ctx, job.MenuID, job.SessionID, itemsToGenerate); err != nil {
		logrus.Errorf("Failed to create pending image records for menu %s: %v", job.MenuID, err)
		return
	}

	var wg sync.WaitGroup
	for _, item := range itemsToGenerate {
		wg.Add(1)
		go func(item models.SelectedItem) {
			defer wg.Done()
			s.generateOne(ctx, job, item)
		}(item)
	}
	wg.Wait()
}

func (s *ImageGenerationService) generateOne(ctx context.Context, job ImageGenerationJob, item models.SelectedItem) {
	// Any error in the per-item flow is a failed outcome for that item,
	// including the status write itself.
	if err := s.Store.UpdateImageStatus(ctx, job.MenuID, item.Key, models.ImageStatusGenerating, "", ""); err != nil {
		logrus.Errorf("Failed to mark %s generating: %v", item.Key, err)
		if updateErr := s.Store.UpdateImageStatus(ctx, job.MenuID, item.Key, models.ImageStatusFailed, "", err.Error()); updateErr != nil {
			logrus.Errorf("Failed to mark %s failed: %v", item.Key, updateErr)
		}
		return
	}

	imageURL, err := s.Generator.GenerateDishImage(ctx, job.SessionID, job.MenuID, item, job.Theme)
	if err != nil {
		logrus.Errorf("Error generating image for %s: %v", item.Name, err)
		if updateErr := s.Store.UpdateImageStatus(ctx, job.MenuID, item.Key, models.ImageStatusFailed, "", err.Error()); updateErr != nil {
			logrus.Errorf("Failed to mark %s failed: %v", item.Key, updateErr)
		}
		return
	}

	if err := s.Store.UpdateImageStatus(ctx, job.MenuID, item.Key, models.ImageStatusCompleted, imageURL, ""); err != nil {
		logrus.Errorf("Failed to mark %s completed: %v", item.Key, err)
	}
}
