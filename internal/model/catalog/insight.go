package catalog

// UserInsight summarizes a user's shopping history. IsNewUser means the
// backend has no history for the user; that is a valid answer, not an error,
// and the numeric fields are zero in that case.
type UserInsight struct {
	UserID        string   `json:"user_id"`
	IsNewUser     bool     `json:"is_new_user"`
	Insight       string   `json:"insight"`
	TotalSpend    float64  `json:"total_spend,omitempty"`
	PurchaseCount float64  `json:"purchase_count,omitempty"`
	TopCategories []string `json:"top_categories,omitempty"`
}
