package models

// PriceRange buckets used for camera and plating decisions.
const (
	PriceRangeBudget   = "budget"
	PriceRangeMidRange = "mid-range"
	PriceRangeUpscale  = "upscale"
)

// MenuTheme is the inferred visual identity of one menu. It is produced once
// per extraction and consumed by every image-generation call for that menu.
// It is never written to the menu document.
type MenuTheme struct {
	CuisineType       string   `json:"cuisineType"`
	CuisineSubtype    string   `json:"cuisineSubtype,omitempty"`
	PresentationStyle string   `json:"presentationStyle"`
	PlateDescription  string   `json:"plateDescription"`
	PriceRange        string   `json:"priceRange"`
	SurfaceMaterial   string   `json:"surfaceMaterial,omitempty"`
	LightingStyle     string   `json:"lightingStyle,omitempty"`
	ColorPalette      []string `json:"colorPalette,omitempty"`
}

// DefaultMenuTheme is the fallback when theme inference fails. Extraction
// continues with it instead of aborting.
func DefaultMenuTheme() *MenuTheme {
	return &MenuTheme{
		CuisineType:       "International",
		PresentationStyle: "casual modern",
		PlateDescription:  "served on a restaurant plate",
		PriceRange:        PriceRangeMidRange,
	}
}
