package models

// Image generation record statuses. A record moves pending → generating →
// completed|failed and never reverts.
const (
	ImageStatusPending    = "pending"
	ImageStatusGenerating = "generating"
	ImageStatusCompleted  = "completed"
	ImageStatusFailed     = "failed"
)

// ImageGenerationRecord tracks one dish image, keyed by the positional
// itemKey "cat:<categoryIndex>:item:<itemIndex>" computed against the
// persisted (possibly truncated) menu.
type ImageGenerationRecord struct {
	ID        string `json:"id" firestore:"-"`
	MenuID    string `json:"menuId" firestore:"menuId"`
	SessionID string `json:"sessionId" firestore:"sessionId"`
	ItemKey   string `json:"itemKey" firestore:"itemKey"`
	ItemName  string `json:"itemName" firestore:"itemName"`
	Status    string `json:"status" firestore:"status"`
	ImageURL  string `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Error     string `json:"error,omitempty" firestore:"error,omitempty"`
	CreatedAt int64  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" firestore:"updatedAt"`
}

// SelectedItem is one dish picked for image generation, in document order.
type SelectedItem struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
}

// ImageProgressItem is the per-dish view clients render while polling.
type ImageProgressItem struct {
	ItemKey  string `json:"itemKey"`
	ItemName string `json:"itemName"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImageProgress aggregates record states for one menu.
// Completed+Generating+Failed+Pending always equals Total.
type ImageProgress struct {
	Total      int                 `json:"total"`
	Completed  int                 `json:"completed"`
	Generating int                 `json:"generating"`
	Failed     int                 `json:"failed"`
	Pending    int                 `json:"pending"`
	Items      []ImageProgressItem `json:"items"`
}

// Done reports whether every record reached a terminal state.
func (p *ImageProgress) Done() bool {
	return p.Total > 0 && p.Completed+p.Failed == p.Total
}
