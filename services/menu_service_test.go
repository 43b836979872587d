package services

import (
	"fmt"
	"strings"
	"testing"

	"MenuLens/models"
	"MenuLens/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestMenu(categories, itemsPerCategory int, descriptionLen int) *models.MenuPayload {
	menu := &models.MenuPayload{
		RestaurantName: "Test Restaurant",
		Categories:     make([]models.MenuCategory, categories),
	}
	description := strings.Repeat("x", descriptionLen)
	for i := 0; i < categories; i++ {
		items := make([]models.MenuItem, itemsPerCategory)
		for j := 0; j < itemsPerCategory; j++ {
			items[j] = models.MenuItem{
				Name:        fmt.Sprintf("Dish %d-%d", i, j),
				Description: description,
				Price:       "$12.99",
			}
		}
		menu.Categories[i] = models.MenuCategory{
			Name:  fmt.Sprintf("Category %d", i),
			Items: items,
		}
	}
	return menu
}

func flattenItemNames(categories []models.MenuCategory) []string {
	var names []string
	for _, cat := range categories {
		for _, item := range cat.Items {
			names = append(names, item.Name)
		}
	}
	return names
}

func TestReduceMenuIdentityUnderLimits(t *testing.T) {
	menu := buildTestMenu(2, 3, 40)

	doc, err := reduceMenuForStorage("session-1", menu, 1234)
	require.NoError(t, err)

	assert.Equal(t, "session-1", doc.SessionID)
	assert.Equal(t, int64(1234), doc.CreatedAt)
	assert.Equal(t, int64(1234), doc.UpdatedAt)
	assert.Equal(t, 6, doc.TotalItems)
	assert.Equal(t, 2, doc.TotalCategories)
	assert.True(t, doc.HasRestaurantName)
	assert.False(t, doc.HasBranding)
	assert.Equal(t, flattenItemNames(menu.Categories), flattenItemNames(doc.Categories))
}

func TestReduceMenuStripsImages(t *testing.T) {
	menu := buildTestMenu(1, 2, 20)
	menu.ImageBase64 = "data:image/png;base64,AAAA"
	menu.Categories[0].Items[0].ImageURL = "https://example.com/old.png"

	doc, err := reduceMenuForStorage("session-1", menu, 1)
	require.NoError(t, err)

	for _, item := range doc.Categories[0].Items {
		assert.Empty(t, item.ImageURL)
	}
}

func TestReduceMenuFieldLengthLimits(t *testing.T) {
	confidence := 0.9
	menu := &models.MenuPayload{
		RestaurantName: strings.Repeat("R", 100),
		Categories: []models.MenuCategory{
			{
				Name: strings.Repeat("C", 50),
				Items: []models.MenuItem{
					{
						Name:        strings.Repeat("N", 80),
						Description: strings.Repeat("D", 200),
						Price:       strings.Repeat("P", 40),
						Confidence:  &confidence,
					},
				},
			},
		},
	}

	doc, err := reduceMenuForStorage("session-1", menu, 1)
	require.NoError(t, err)

	assert.Len(t, doc.RestaurantName, 80)
	assert.Len(t, doc.Categories[0].Name, 40)
	item := doc.Categories[0].Items[0]
	assert.Len(t, item.Name, 60)
	assert.Len(t, item.Description, 120)
	assert.Len(t, item.Price, 30)
	require.NotNil(t, item.Confidence)
	assert.Equal(t, 0.9, *item.Confidence)
}

func TestTruncateMenuPreservesOrder(t *testing.T) {
	// 5 categories of 10 items: the per-category cap does not bite, the
	// total cap keeps the first 50 in document order.
	menu := buildTestMenu(5, 10, 30)

	truncated := truncateMenuData(menu, 15, 20)

	input := flattenItemNames(menu.Categories)
	output := flattenItemNames(truncated.Categories)
	require.Len(t, output, 20)
	assert.Equal(t, input[:20], output)
}

func TestTruncateMenuKeepsEmptyCategories(t *testing.T) {
	// 5 categories x 15 items truncate to 50 total: the last category loses
	// every item but stays present as an empty category.
	menu := buildTestMenu(5, 15, 30)

	truncated := truncateMenuData(menu, 15, 50)

	require.Len(t, truncated.Categories, 5)
	assert.Len(t, truncated.Categories[0].Items, 15)
	assert.Len(t, truncated.Categories[3].Items, 5)
	assert.Empty(t, truncated.Categories[4].Items)
	assert.Equal(t, 50, truncated.TotalItems())
}

func TestTruncateMenuDeterministic(t *testing.T) {
	menu := buildTestMenu(5, 40, 200)

	first := flattenItemNames(truncateMenuData(menu, 15, 50).Categories)
	second := flattenItemNames(truncateMenuData(menu, 15, 50).Categories)
	assert.Equal(t, first, second)
}

func TestTruncateMenuSizeShrinksWithCaps(t *testing.T) {
	menu := buildTestMenu(5, 40, 200)

	previous := -1
	for _, caps := range []struct{ perCategory, total int }{
		{15, 50}, {12, 40}, {9, 32}, {7, 25}, {5, 20},
	} {
		doc := buildMenuDocument("session-1", truncateMenuData(menu, caps.perCategory, caps.total), 1)
		size := estimateDocumentSize(doc)
		if previous >= 0 {
			assert.LessOrEqual(t, size, previous)
		}
		previous = size
	}
}

func TestReduceMenuLargeInputFitsBudget(t *testing.T) {
	// 200 items across 5 categories with long descriptions.
	menu := buildTestMenu(5, 40, 500)

	doc, err := reduceMenuForStorage("session-1", menu, 1)
	require.NoError(t, err)

	assert.LessOrEqual(t, estimateDocumentSize(doc), MaxDocumentSizeBytes)
	assert.LessOrEqual(t, doc.TotalItems, maxTotalItems)

	// Earlier items are preferred at every cap level.
	output := flattenItemNames(doc.Categories)
	assert.Equal(t, "Dish 0-0", output[0])
}

func TestReduceMenuTooLargeFails(t *testing.T) {
	// Branding fields are not truncated, so an oversized color payload can
	// never be reduced under the budget.
	menu := buildTestMenu(1, 1, 10)
	menu.Branding = &models.MenuBranding{
		PrimaryColor: strings.Repeat("#", MaxDocumentSizeBytes+1024),
	}

	_, err := reduceMenuForStorage("session-1", menu, 1)
	require.Error(t, err)

	var tooLarge *utils.DocumentTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, maxReductionIterations, tooLarge.Iterations)
	assert.Greater(t, tooLarge.SizeBytes, tooLarge.LimitBytes)
	assert.Contains(t, err.Error(), "0.68 MiB safe limit")
	assert.Contains(t, err.Error(), "after 10 reduction iterations")
}

func TestSessionOwns(t *testing.T) {
	doc := &models.MenuDocument{SessionID: "session-1"}
	assert.True(t, sessionOwns(doc, "session-1"))
	assert.False(t, sessionOwns(doc, "session-2"))
	assert.False(t, sessionOwns(doc, ""))
	assert.False(t, sessionOwns(nil, "session-1"))
}

func TestMenuForSessionOwnership(t *testing.T) {
	doc := buildMenuDocument("session-1", buildTestMenu(2, 3, 20), 99)

	assert.Nil(t, menuForSession(doc, "menu-1", "session-2"))
	assert.Nil(t, menuForSession(nil, "menu-1", "session-1"))

	got := menuForSession(doc, "menu-1", "session-1")
	require.NotNil(t, got)
	assert.Equal(t, "menu-1", got.ID)
	assert.Equal(t, int64(99), got.CreatedAt)
	assert.Equal(t, int64(99), got.UpdatedAt)
	assert.Equal(t, 6, got.TotalItems)
	assert.Equal(t, 2, got.TotalCategories)
	assert.True(t, got.HasRestaurantName)
	assert.False(t, got.HasBranding)
	assert.Equal(t, flattenItemNames(doc.Categories), flattenItemNames(got.Categories))
}

func TestAggregateImageProgressAccounting(t *testing.T) {
	records := []models.ImageGenerationRecord{
		{ItemKey: "cat:0:item:0", ItemName: "A", Status: models.ImageStatusCompleted, ImageURL: "https://img/a"},
		{ItemKey: "cat:0:item:1", ItemName: "B", Status: models.ImageStatusGenerating},
		{ItemKey: "cat:0:item:2", ItemName: "C", Status: models.ImageStatusFailed, Error: "provider error"},
		{ItemKey: "cat:1:item:0", ItemName: "D", Status: models.ImageStatusPending},
	}

	progress := aggregateImageProgress(records)

	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	assert.Equal(t, 1, progress.Generating)
	assert.Equal(t, 1, progress.Failed)
	assert.Equal(t, 1, progress.Pending)
	assert.Equal(t, progress.Total, progress.Completed+progress.Generating+progress.Failed+progress.Pending)
	require.Len(t, progress.Items, 4)
	assert.Equal(t, "provider error", progress.Items[2].Error)
	assert.False(t, progress.Done())
}

func TestImageProgressDone(t *testing.T) {
	progress := aggregateImageProgress([]models.ImageGenerationRecord{
		{ItemKey: "cat:0:item:0", Status: models.ImageStatusCompleted},
		{ItemKey: "cat:0:item:1", Status: models.ImageStatusFailed},
	})
	assert.True(t, progress.Done())

	empty := aggregateImageProgress(nil)
	assert.False(t, empty.Done())
}
