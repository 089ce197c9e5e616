package catalog

// RecommendationItem is one ranked product returned by the backend.
// Explanation and Priority are only populated on some paths (cold-start
// recommendations carry reasoning/priority, ranked lists carry
// explanation/match_score).
type RecommendationItem struct {
	ProductID   string  `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Explanation string  `json:"explanation,omitempty"`
	Reasoning   string  `json:"reasoning,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	MatchScore  float64 `json:"match_score,omitempty"`
}

// Why returns whichever free-text justification the backend attached.
func (r RecommendationItem) Why() string {
	if r.Explanation != "" {
		return r.Explanation
	}
	return r.Reasoning
}

// RecommendationList is the envelope of the ranked-list endpoint.
type RecommendationList struct {
	UserID           string               `json:"user_id"`
	Recommendations  []RecommendationItem `json:"recommendations"`
	ProcessingTimeMs float64              `json:"processing_time_ms"`
	Cached           bool                 `json:"cached,omitempty"`
	Strategy         string               `json:"strategy,omitempty"`
}
