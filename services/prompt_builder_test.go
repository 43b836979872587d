package services

import (
	"strings"
	"testing"

	"MenuLens/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDishPromptAlwaysIncludesRequiredParts(t *testing.T) {
	prompt := BuildDishPrompt(DishPromptParams{
		Name:     "Tacos al Pastor",
		DishType: DishTypeTaco,
	})

	assert.Contains(t, prompt, "Tacos al Pastor")
	assert.Contains(t, prompt, "no text")
	assert.Contains(t, prompt, "no watermark")
}

func TestBuildDishPromptDefaultsWithoutTheme(t *testing.T) {
	prompt := BuildDishPrompt(DishPromptParams{
		Name:     "Margherita Pizza",
		DishType: DishTypeOther,
	})

	// Mid-range camera and natural lighting are the defaults.
	assert.Contains(t, prompt, cameraConfig["mid-range"].Setup)
	assert.Contains(t, prompt, lightingConfig["natural"])
	assert.Contains(t, prompt, "Plating: on a white ceramic plate")
	assert.Contains(t, prompt, "Surface: "+surfaceConfig["casual modern"])
}

func TestBuildDishPromptUsesTheme(t *testing.T) {
	theme := &models.MenuTheme{
		CuisineType:       "Mexican",
		CuisineSubtype:    "Oaxacan",
		PresentationStyle: "street food authentic",
		PlateDescription:  "one taco on a small plate, lime wedge on the side",
		PriceRange:        models.PriceRangeUpscale,
		SurfaceMaterial:   "dark slate",
		LightingStyle:     "dramatic",
	}

	prompt := BuildDishPrompt(DishPromptParams{
		Name:        "Tacos de Bistec",
		Description: "grilled steak, onion, cilantro",
		Theme:       theme,
		DishType:    DishTypeTaco,
	})

	assert.Contains(t, prompt, cameraConfig["upscale"].Setup)
	assert.Contains(t, prompt, "one taco on a small plate, lime wedge on the side, Oaxacan presentation")
	assert.Contains(t, prompt, "Surface: dark slate")
	assert.Contains(t, prompt, lightingConfig["dramatic"])
	assert.Contains(t, prompt, "grilled steak, onion, cilantro")
}

func TestBuildDishPromptSurfaceFromPresentationStyle(t *testing.T) {
	theme := &models.MenuTheme{
		CuisineType:       "Japanese",
		PresentationStyle: "traditional Japanese",
		PlateDescription:  "deep ceramic bowl",
		PriceRange:        models.PriceRangeMidRange,
	}

	prompt := BuildDishPrompt(DishPromptParams{
		Name:     "Tonkotsu Ramen",
		Theme:    theme,
		DishType: DishTypeSoup,
	})

	assert.Contains(t, prompt, surfaceConfig["traditional Japanese"])
}

func TestBuildDishPromptPartOrder(t *testing.T) {
	prompt := BuildDishPrompt(DishPromptParams{
		Name:     "Garlic Bread",
		DishType: DishTypeBread,
	})

	labels := []string{"Subject:", "Texture:", "Plating:", "Surface:", "Lighting:", "Styling:", "Quality:", "Constraints:"}
	last := -1
	for _, label := range labels {
		idx := strings.Index(prompt, label)
		require.GreaterOrEqual(t, idx, 0, "missing %s", label)
		assert.Greater(t, idx, last, "%s out of order", label)
		last = idx
	}
}

// The lookup tables are closed and exhaustive: every dish type and price
// tier must have a complete entry.
func TestPromptConfigTablesComplete(t *testing.T) {
	dishTypes := []string{
		DishTypePasta, DishTypeMeat, DishTypeSeafood, DishTypeSoup,
		DishTypeSalad, DishTypeDessert, DishTypeBread, DishTypeFried,
		DishTypeRice, DishTypeTaco, DishTypeBurger, DishTypeBeverage,
		DishTypeOther,
	}
	for _, dishType := range dishTypes {
		rules, ok := dishTypeRules[dishType]
		require.True(t, ok, "missing rules for %s", dishType)
		assert.NotEmpty(t, rules.Texture, dishType)
		assert.NotEmpty(t, rules.Styling, dishType)
		assert.NotEmpty(t, rules.Imperfections, dishType)

		_, ok = dishTypeKeywords[dishType]
		assert.True(t, ok, "missing keywords for %s", dishType)
	}

	for _, tier := range []string{models.PriceRangeBudget, models.PriceRangeMidRange, models.PriceRangeUpscale} {
		camera, ok := cameraConfig[tier]
		require.True(t, ok, "missing camera config for %s", tier)
		assert.NotEmpty(t, camera.Setup, tier)
		assert.NotEmpty(t, camera.DOF, tier)
		assert.NotEmpty(t, camera.Angle, tier)
	}
}

func TestBuildDishPromptDeterministic(t *testing.T) {
	params := DishPromptParams{
		Name:        "Classic Cheeseburger",
		Description: "double patty, cheddar",
		Theme:       models.DefaultMenuTheme(),
		DishType:    DishTypeBurger,
	}
	first := BuildDishPrompt(params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildDishPrompt(params))
	}
}
