package transport

import (
	"context"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

// SearchClient runs natural-language product searches.
type SearchClient struct {
	client
}

func NewSearchClient(cfg Config) *SearchClient {
	return &SearchClient{client: newClient(cfg)}
}

// Search submits a free-text query. userID may be empty; the backend then
// skips personalization.
func (c *SearchClient) Search(ctx context.Context, query, userID string, topK int) (catalog.SearchResponse, error) {
	payload := struct {
		Query  string `json:"query"`
		UserID string `json:"user_id,omitempty"`
		TopK   int    `json:"top_k"`
	}{query, userID, topK}

	var out catalog.SearchResponse
	if err := c.postJSON(ctx, "search.natural", "/search/natural", payload, &out); err != nil {
		return catalog.SearchResponse{}, err
	}
	return out, nil
}
