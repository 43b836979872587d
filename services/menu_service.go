package services

import (
	"context"
	"encoding/json"
	"time"

	"MenuLens/config/database"
	"MenuLens/models"
	"MenuLens/utils"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Data size and count limits for menu processing.
const (
	// MaxDocumentSizeBytes is the storage budget per menu document.
	MaxDocumentSizeBytes = 700 * 1024
	// MaxImagesPerMenu caps how many dishes get generated images.
	MaxImagesPerMenu = 4

	maxItemsPerCategory = 15
	maxTotalItems       = 50
	minItemsPerCategory = 5
	minTotalItems       = 20

	maxReductionIterations = 10

	maxCategoryNameLen   = 40
	maxItemNameLen       = 60
	maxDescriptionLen    = 120
	maxPriceLen          = 30
	maxRestaurantNameLen = 80
)

// Retention windows for the admin cleanup sweeps.
const (
	menuRetentionDays = 30
	// Generated image URLs expire after about a day, so stale records
	// are useless beyond that.
	imageRecordRetentionDays = 1
)

// MenuService owns the menu document lifecycle: session-scoped uniqueness,
// truncation enforcement and CRUD over the Firestore collections.
type MenuService struct {
	FirestoreClient *firestore.Client
}

// NewMenuService initializes MenuService with the Firestore client.
func NewMenuService() *MenuService {
	return &MenuService{
		FirestoreClient: database.GetFirestoreClient(),
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// truncateMenuData applies field-length limits and item caps while preserving
// document order: earlier categories and items always win. Categories whose
// items are all dropped stay as empty categories.
func truncateMenuData(menu *models.MenuPayload, maxPerCategory, maxTotal int) *models.MenuPayload {
	truncated := &models.MenuPayload{
		RestaurantName: truncateRunes(menu.RestaurantName, maxRestaurantNameLen),
		Categories:     make([]models.MenuCategory, len(menu.Categories)),
	}
	if menu.Branding != nil {
		branding := *menu.Branding
		truncated.Branding = &branding
	}

	for i, cat := range menu.Categories {
		kept := cat.Items
		if len(kept) > maxPerCategory {
			kept = kept[:maxPerCategory]
		}
		items := make([]models.MenuItem, len(kept))
		for j, item := range kept {
			items[j] = models.MenuItem{
				Name:        truncateRunes(item.Name, maxItemNameLen),
				Description: truncateRunes(item.Description, maxDescriptionLen),
				Price:       truncateRunes(item.Price, maxPriceLen),
				Confidence:  item.Confidence,
			}
		}
		truncated.Categories[i] = models.MenuCategory{
			Name:  truncateRunes(cat.Name, maxCategoryNameLen),
			Items: items,
		}
	}

	if truncated.TotalItems() > maxTotal {
		type positionedItem struct {
			categoryIndex int
			item          models.MenuItem
		}
		var allItems []positionedItem
		for i, cat := range truncated.Categories {
			for _, item := range cat.Items {
				allItems = append(allItems, positionedItem{categoryIndex: i, item: item})
			}
		}

		limited := allItems[:maxTotal]
		for i := range truncated.Categories {
			truncated.Categories[i].Items = []models.MenuItem{}
		}
		for _, pi := range limited {
			cat := &truncated.Categories[pi.categoryIndex]
			cat.Items = append(cat.Items, pi.item)
		}
	}

	return truncated
}

// buildMenuDocument assembles the persisted shape with its derived summary
// fields recomputed.
func buildMenuDocument(sessionID string, menu *models.MenuPayload, now int64) *models.MenuDocument {
	return &models.MenuDocument{
		SessionID:         sessionID,
		RestaurantName:    menu.RestaurantName,
		Branding:          menu.Branding,
		Categories:        menu.Categories,
		TotalItems:        menu.TotalItems(),
		TotalCategories:   len(menu.Categories),
		HasRestaurantName: menu.RestaurantName != "",
		HasBranding:       menu.Branding != nil,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func estimateDocumentSize(doc *models.MenuDocument) int {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0
	}
	return len(data)
}

// stripMenuImages removes the raw photo payload and any pre-existing item
// image URLs. Images are never embedded in the stored document.
func stripMenuImages(menu *models.MenuPayload) *models.MenuPayload {
	stripped := &models.MenuPayload{
		RestaurantName: menu.RestaurantName,
		Branding:       menu.Branding,
		Categories:     make([]models.MenuCategory, len(menu.Categories)),
	}
	for i, cat := range menu.Categories {
		items := make([]models.MenuItem, len(cat.Items))
		for j, item := range cat.Items {
			item.ImageURL = ""
			item.ImageAlt = ""
			items[j] = item
		}
		stripped.Categories[i] = models.MenuCategory{Name: cat.Name, Items: items}
	}
	return stripped
}

// reduceMenuForStorage runs the adaptive truncation loop: truncate, assemble,
// measure, and shrink both caps by 0.8 (floored at 5 per category / 20 total)
// until the serialized document fits the budget or the iteration limit is hit.
// Deterministic for a given input.
func reduceMenuForStorage(sessionID string, menu *models.MenuPayload, now int64) (*models.MenuDocument, error) {
	stripped := stripMenuImages(menu)

	truncated := truncateMenuData(stripped, maxItemsPerCategory, maxTotalItems)
	reductionFactor := 1.0
	iterations := 0

	var doc *models.MenuDocument
	for iterations < maxReductionIterations {
		doc = buildMenuDocument(sessionID, truncated, now)
		if estimateDocumentSize(doc) <= MaxDocumentSizeBytes {
			break
		}

		reductionFactor *= 0.8
		newPerCategory := int(float64(maxItemsPerCategory) * reductionFactor)
		if newPerCategory < minItemsPerCategory {
			newPerCategory = minItemsPerCategory
		}
		newTotal := int(float64(maxTotalItems) * reductionFactor)
		if newTotal < minTotalItems {
			newTotal = minTotalItems
		}

		truncated = truncateMenuData(stripped, newPerCategory, newTotal)
		iterations++
	}

	doc = buildMenuDocument(sessionID, truncated, now)
	finalSize := estimateDocumentSize(doc)
	if finalSize > MaxDocumentSizeBytes {
		return nil, &utils.DocumentTooLargeError{
			SizeBytes:  finalSize,
			LimitBytes: MaxDocumentSizeBytes,
			Iterations: iterations,
		}
	}

	return doc, nil
}

func (s *MenuService) deleteSessionMenus(ctx context.Context, sessionID string) error {
	docs, err := s.FirestoreClient.Collection("menus").
		Where("sessionId", "==", sessionID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *MenuService) deleteSessionImageRecords(ctx context.Context, sessionID string) error {
	docs, err := s.FirestoreClient.Collection("image_generations").
		Where("sessionId", "==", sessionID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SaveMenu persists a menu for the session, replacing any previous menu.
// At most one live menu document exists per session at any time.
func (s *MenuService) SaveMenu(ctx context.Context, sessionID string, menu *models.MenuPayload) (*models.SavedMenu, error) {
	if sessionID == "" {
		return nil, utils.NewValidationError("sessionId is required")
	}
	menu.Normalize()

	if err := s.deleteSessionMenus(ctx, sessionID); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	doc, err := reduceMenuForStorage(sessionID, menu, now)
	if err != nil {
		return nil, err
	}

	docRef := s.FirestoreClient.Collection("menus").NewDoc()
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, err
	}

	return &models.SavedMenu{ID: docRef.ID, CreatedAt: now}, nil
}

// SaveMenuInternal is the image-enabled save path used by extraction: it also
// clears the session's image generation records before writing.
func (s *MenuService) SaveMenuInternal(ctx context.Context, sessionID string, menu *models.MenuPayload) (string, error) {
	menu.Normalize()

	if err := s.deleteSessionMenus(ctx, sessionID); err != nil {
		return "", err
	}
	if err := s.deleteSessionImageRecords(ctx, sessionID); err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	doc, err := reduceMenuForStorage(sessionID, menu, now)
	if err != nil {
		return "", err
	}

	docRef := s.FirestoreClient.Collection("menus").NewDoc()
	if _, err := docRef.Set(ctx, doc); err != nil {
		return "", err
	}

	return docRef.ID, nil
}

// sessionOwns reports whether the menu belongs to the session. Ownership is
// the only authorization check: a session never sees another session's data.
func sessionOwns(menu *models.MenuDocument, sessionID string) bool {
	return menu != nil && menu.SessionID == sessionID
}

// menuForSession converts a loaded document into the session-scoped read
// shape, or nil when the session does not own it.
func menuForSession(menu *models.MenuDocument, menuID, sessionID string) *models.MenuWithMeta {
	if !sessionOwns(menu, sessionID) {
		return nil
	}
	return &models.MenuWithMeta{
		ID:                menuID,
		CreatedAt:         menu.CreatedAt,
		UpdatedAt:         menu.UpdatedAt,
		RestaurantName:    menu.RestaurantName,
		Branding:          menu.Branding,
		Categories:        menu.Categories,
		TotalItems:        menu.TotalItems,
		TotalCategories:   menu.TotalCategories,
		HasRestaurantName: menu.HasRestaurantName,
		HasBranding:       menu.HasBranding,
	}
}

// GetMenuByID is the session-scoped read. Absent menu or session mismatch is
// a nil result, not an error, so polling stays cheap.
func (s *MenuService) GetMenuByID(ctx context.Context, menuID, sessionID string) (*models.MenuWithMeta, error) {
	doc, err := s.FirestoreClient.Collection("menus").Doc(menuID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var menu models.MenuDocument
	if err := doc.DataTo(&menu); err != nil {
		return nil, err
	}

	return menuForSession(&menu, doc.Ref.ID, sessionID), nil
}

// GetMenuInternal loads a menu by id without a session check. Internal use
// only, from the image generation worker.
func (s *MenuService) GetMenuInternal(ctx context.Context, menuID string) (*models.MenuDocument, error) {
	doc, err := s.FirestoreClient.Collection("menus").Doc(menuID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var menu models.MenuDocument
	if err := doc.DataTo(&menu); err != nil {
		return nil, err
	}
	menu.ID = doc.Ref.ID
	return &menu, nil
}

// CreatePendingImageRecords inserts one pending record per selected item in a
// single batch.
func (s *MenuService) CreatePendingImageRecords(ctx context.Context, menuID, sessionID string, items []models.SelectedItem) error {
	now := time.Now().UnixMilli()
	batch := s.FirestoreClient.Batch()

	for _, item := range items {
		docRef := s.FirestoreClient.Collection("image_generations").NewDoc()
		batch.Set(docRef, &models.ImageGenerationRecord{
			MenuID:    menuID,
			SessionID: sessionID,
			ItemKey:   item.Key,
			ItemName:  item.Name,
			Status:    models.ImageStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	_, err := batch.Commit(ctx)
	return err
}

// UpdateImageStatus patches the record identified by (menuId, itemKey).
// Each update is its own atomic write; items never share a transaction.
func (s *MenuService) UpdateImageStatus(ctx context.Context, menuID, itemKey, imageStatus, imageURL, errorMessage string) error {
	docs, err := s.FirestoreClient.Collection("image_generations").
		Where("menuId", "==", menuID).
		Where("itemKey", "==", itemKey).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	updates := []firestore.Update{
		{Path: "status", Value: imageStatus},
		{Path: "updatedAt", Value: time.Now().UnixMilli()},
	}
	if imageURL != "" {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: imageURL})
	}
	if errorMessage != "" {
		updates = append(updates, firestore.Update{Path: "error", Value: errorMessage})
	}

	_, err = docs[0].Ref.Update(ctx, updates)
	return err
}

// aggregateImageProgress folds record states into the client-facing summary.
func aggregateImageProgress(records []models.ImageGenerationRecord) *models.ImageProgress {
	progress := &models.ImageProgress{
		Total: len(records),
		Items: make([]models.ImageProgressItem, 0, len(records)),
	}
	for _, record := range records {
		switch record.Status {
		case models.ImageStatusCompleted:
			progress.Completed++
		case models.ImageStatusGenerating:
			progress.Generating++
		case models.ImageStatusFailed:
			progress.Failed++
		case models.ImageStatusPending:
			progress.Pending++
		}
		progress.Items = append(progress.Items, models.ImageProgressItem{
			ItemKey:  record.ItemKey,
			ItemName: record.ItemName,
			Status:   record.Status,
			ImageURL: record.ImageURL,
			Error:    record.Error,
		})
	}
	return progress
}

// GetImageProgress aggregates per-item generation status for polling clients.
// Pure read, safe at any frequency; nil when the menu is missing or belongs
// to another session.
func (s *MenuService) GetImageProgress(ctx context.Context, menuID, sessionID string) (*models.ImageProgress, error) {
	menu, err := s.GetMenuInternal(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !sessionOwns(menu, sessionID) {
		return nil, nil
	}

	docs, err := s.FirestoreClient.Collection("image_generations").
		Where("menuId", "==", menuID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	records := make([]models.ImageGenerationRecord, 0, len(docs))
	for _, doc := range docs {
		var record models.ImageGenerationRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, err
		}
		record.ID = doc.Ref.ID
		records = append(records, record)
	}

	return aggregateImageProgress(records), nil
}

// ClearAllMenus deletes every menu document. Admin only.
func (s *MenuService) ClearAllMenus(ctx context.Context) (int, error) {
	docs, err := s.FirestoreClient.Collection("menus").Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// CleanupOldMenus deletes menus past the retention window along with their
// image generation records. Intended for scheduled cleanup jobs.
func (s *MenuService) CleanupOldMenus(ctx context.Context) (deletedMenus, deletedImages int, err error) {
	cutoff := time.Now().AddDate(0, 0, -menuRetentionDays).UnixMilli()

	menuDocs, err := s.FirestoreClient.Collection("menus").
		Where("createdAt", "<", cutoff).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, 0, err
	}

	for _, menuDoc := range menuDocs {
		imageDocs, err := s.FirestoreClient.Collection("image_generations").
			Where("menuId", "==", menuDoc.Ref.ID).
			Documents(ctx).GetAll()
		if err != nil {
			return deletedMenus, deletedImages, err
		}
		for _, imageDoc := range imageDocs {
			if _, err := imageDoc.Ref.Delete(ctx); err != nil {
				return deletedMenus, deletedImages, err
			}
			deletedImages++
		}

		if _, err := menuDoc.Ref.Delete(ctx); err != nil {
			return deletedMenus, deletedImages, err
		}
		deletedMenus++
	}

	logrus.Infof("Cleanup removed %d menus and %d image records", deletedMenus, deletedImages)
	return deletedMenus, deletedImages, nil
}

// CleanupOldImageRecords deletes image generation records older than the
// record retention window.
func (s *MenuService) CleanupOldImageRecords(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -imageRecordRetentionDays).UnixMilli()

	docs, err := s.FirestoreClient.Collection("image_generations").
		Where("createdAt", "<", cutoff).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
