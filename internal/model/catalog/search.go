package catalog

// QueryUnderstanding is the structured interpretation the backend extracts
// from a free-text query.
type QueryUnderstanding struct {
	Intent   string   `json:"intent"`
	Category string   `json:"category,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Features []string `json:"features,omitempty"`
}

// SearchResult is one scored product match.
type SearchResult struct {
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	RelevanceScore float64 `json:"relevance_score"`
	Explanation    string  `json:"explanation,omitempty"`
}

// SearchResponse is the envelope of the natural-language search endpoint.
type SearchResponse struct {
	Query              string             `json:"query"`
	QueryUnderstanding QueryUnderstanding `json:"query_understanding"`
	Results            []SearchResult     `json:"results"`
	ResultCount        int                `json:"result_count"`
	ProcessingTimeMs   float64            `json:"processing_time_ms"`
}
