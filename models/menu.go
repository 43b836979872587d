package models

// MenuItem is a single dish on the menu. The raw photo is never embedded here.
type MenuItem struct {
	Name        string   `json:"name" firestore:"name" binding:"required"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Price       string   `json:"price,omitempty" firestore:"price,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty" firestore:"confidence,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	ImageAlt    string   `json:"imageAlt,omitempty" firestore:"imageAlt,omitempty"`
}

// MenuCategory is an ordered section of the menu. Category order and the item
// order inside it are display order and survive truncation.
type MenuCategory struct {
	Name  string     `json:"name" firestore:"name"`
	Items []MenuItem `json:"items" firestore:"items"`
}

type MenuBranding struct {
	PrimaryColor string `json:"primaryColor,omitempty" firestore:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty" firestore:"accentColor,omitempty"`
}

// MenuPayload is the wire shape shared by extraction output and save input.
// ImageBase64 is only ever an input field and is stripped before storage.
type MenuPayload struct {
	RestaurantName string         `json:"restaurantName,omitempty" firestore:"restaurantName,omitempty"`
	Branding       *MenuBranding  `json:"branding,omitempty" firestore:"branding,omitempty"`
	Categories     []MenuCategory `json:"categories" firestore:"categories"`
	ImageBase64    string         `json:"imageBase64,omitempty" firestore:"-"`
}

// Normalize cleans up loosely-typed model output after JSON decoding.
// JSON null decodes to the zero value, so absent and null already collapse;
// the remaining fixup is unnamed categories.
func (m *MenuPayload) Normalize() {
	for i := range m.Categories {
		if m.Categories[i].Name == "" {
			m.Categories[i].Name = "Other"
		}
		if m.Categories[i].Items == nil {
			m.Categories[i].Items = []MenuItem{}
		}
	}
	if m.Categories == nil {
		m.Categories = []MenuCategory{}
	}
}

// TotalItems counts items across all categories.
func (m *MenuPayload) TotalItems() int {
	total := 0
	for _, cat := range m.Categories {
		total += len(cat.Items)
	}
	return total
}

// MenuDocument is the persisted shape, one live document per session.
// The summary scalars are recomputed on every write.
type MenuDocument struct {
	ID             string         `json:"id" firestore:"-"`
	SessionID      string         `json:"sessionId" firestore:"sessionId"`
	RestaurantName string         `json:"restaurantName,omitempty" firestore:"restaurantName,omitempty"`
	Branding       *MenuBranding  `json:"branding,omitempty" firestore:"branding,omitempty"`
	Categories     []MenuCategory `json:"categories" firestore:"categories"`

	TotalItems        int  `json:"totalItems" firestore:"totalItems"`
	TotalCategories   int  `json:"totalCategories" firestore:"totalCategories"`
	HasRestaurantName bool `json:"hasRestaurantName" firestore:"hasRestaurantName"`
	HasBranding       bool `json:"hasBranding" firestore:"hasBranding"`

	CreatedAt int64 `json:"createdAt" firestore:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" firestore:"updatedAt"`
}

// SavedMenu is what explicit saves return to the caller.
type SavedMenu struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
}

// MenuWithMeta is the session-scoped read shape, the persisted document plus
// its id with the session stripped.
type MenuWithMeta struct {
	ID             string         `json:"id"`
	CreatedAt      int64          `json:"createdAt"`
	UpdatedAt      int64          `json:"updatedAt"`
	RestaurantName string         `json:"restaurantName,omitempty"`
	Branding       *MenuBranding  `json:"branding,omitempty"`
	Categories     []MenuCategory `json:"categories"`

	TotalItems        int  `json:"totalItems"`
	TotalCategories   int  `json:"totalCategories"`
	HasRestaurantName bool `json:"hasRestaurantName"`
	HasBranding       bool `json:"hasBranding"`
}
