package transport

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

// RecommendationClient fetches ranked lists and user insights. Both calls
// are independent and side-effect free; callers may run them concurrently.
type RecommendationClient struct {
	client
}

func NewRecommendationClient(cfg Config) *RecommendationClient {
	return &RecommendationClient{client: newClient(cfg)}
}

// Fetch returns the personalized ranked list for a user.
func (c *RecommendationClient) Fetch(ctx context.Context, userID string, topK int, includeExplanations bool) (catalog.RecommendationList, error) {
	q := url.Values{}
	q.Set("top_k", strconv.Itoa(topK))
	q.Set("include_explanations", strconv.FormatBool(includeExplanations))
	path := fmt.Sprintf("/recommendations/%s?%s", url.PathEscape(userID), q.Encode())

	var out catalog.RecommendationList
	if err := c.getJSON(ctx, "recommendations.fetch", path, &out); err != nil {
		return catalog.RecommendationList{}, err
	}
	return out, nil
}

// Insight returns the behavioral summary for a user. A new user yields
// IsNewUser=true with empty stats, not an error.
func (c *RecommendationClient) Insight(ctx context.Context, userID string) (catalog.UserInsight, error) {
	path := fmt.Sprintf("/recommendations/%s/insight", url.PathEscape(userID))

	var out catalog.UserInsight
	if err := c.getJSON(ctx, "recommendations.insight", path, &out); err != nil {
		return catalog.UserInsight{}, err
	}
	return out, nil
}
