package services

import (
	"fmt"
	"strings"

	"MenuLens/models"
)

// DishPromptParams carries everything the prompt builder needs for one dish.
type DishPromptParams struct {
	Name        string
	Description string
	Theme       *models.MenuTheme
	DishType    string
}

// BuildDishPrompt composes a food photography prompt from fixed building
// blocks, always in the same order: camera, subject, texture, plating,
// surface, lighting, styling, realism markers, negative constraints.
func BuildDishPrompt(params DishPromptParams) string {
	theme := params.Theme
	priceRange := models.PriceRangeMidRange
	if theme != nil && theme.PriceRange != "" {
		priceRange = theme.PriceRange
	}
	rules := dishTypeRules[params.DishType]
	camera, ok := cameraConfig[priceRange]
	if !ok {
		camera = cameraConfig[models.PriceRangeMidRange]
	}

	subject := params.Name
	if params.Description != "" {
		subject += ", " + params.Description
	}

	plating := "on a white ceramic plate"
	presentationStyle := "casual modern"
	surface := ""
	lightingStyle := "natural"
	if theme != nil {
		if theme.PlateDescription != "" {
			plating = theme.PlateDescription
		}
		if theme.CuisineSubtype != "" {
			plating += ", " + theme.CuisineSubtype + " presentation"
		}
		if theme.PresentationStyle != "" {
			presentationStyle = theme.PresentationStyle
		}
		surface = theme.SurfaceMaterial
		if theme.LightingStyle != "" {
			lightingStyle = theme.LightingStyle
		}
	}
	if surface == "" {
		surface = surfaceConfig[presentationStyle]
	}
	if surface == "" {
		surface = defaultSurface
	}
	lighting, ok := lightingConfig[lightingStyle]
	if !ok {
		lighting = lightingConfig["natural"]
	}

	promptParts := []string{
		fmt.Sprintf("%s, %s, %s", camera.Setup, camera.DOF, camera.Angle),
		"Subject: " + subject,
		"Texture: " + rules.Texture,
		"Plating: " + plating,
		"Surface: " + surface,
		"Lighting: " + lighting,
		fmt.Sprintf("Styling: %s. %s", rules.Styling, rules.Imperfections),
		"Quality: " + strings.Join(realismMarkers[:4], ", "),
		"Constraints: " + strings.Join(negativeConstraints, ", "),
	}

	return strings.Join(promptParts, ". ")
}
