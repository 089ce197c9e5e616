package stub_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/stub"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/transport"
)

// These tests pin the wire contract from both sides: the stub must emit
// what the real backend emits, and the transport must read it.

func newWire(t *testing.T) transport.Config {
	t.Helper()
	srv := httptest.NewServer(stub.NewRouter(stub.NewService()))
	t.Cleanup(srv.Close)
	return transport.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}
}

func TestWireColdStartFullSession(t *testing.T) {
	cfg := newWire(t)
	sessions := transport.NewSessionClient(cfg)
	ctx := context.Background()

	questions, err := sessions.Init(ctx, "wire-sess")
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	var res transport.TurnResult
	for i := range questions {
		res, err = sessions.Respond(ctx, "wire-sess", i, "party supplies please")
		require.NoError(t, err)
		if i < len(questions)-1 {
			assert.False(t, res.Complete)
			assert.Equal(t, i+1, res.NextIndex)
			assert.Equal(t, questions[i+1], res.NextQuestion)
		}
	}
	assert.True(t, res.Complete)
	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, "Party", res.Recommendations[0].Category)
	for _, item := range res.Recommendations {
		assert.GreaterOrEqual(t, item.Price, 0.0)
	}
}

func TestWireRespondUnknownSessionIs404(t *testing.T) {
	cfg := newWire(t)
	sessions := transport.NewSessionClient(cfg)

	_, err := sessions.Respond(context.Background(), "never-initialized", 0, "x")
	var te *transport.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, transport.KindStatus, te.Kind)
	assert.Equal(t, 404, te.Status)
}

func TestWireRefine(t *testing.T) {
	cfg := newWire(t)
	sessions := transport.NewSessionClient(cfg)
	ctx := context.Background()

	_, err := sessions.Init(ctx, "wire-sess")
	require.NoError(t, err)

	refined, err := sessions.Refine(ctx, "wire-sess", []string{"20725"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, refined)
	for _, item := range refined {
		assert.Equal(t, "Bags", item.Category)
		assert.NotEqual(t, "20725", item.ProductID)
	}
}

func TestWireRecommendationsAndInsight(t *testing.T) {
	cfg := newWire(t)
	recommender := transport.NewRecommendationClient(cfg)
	ctx := context.Background()

	list, err := recommender.Fetch(ctx, "14646", 3, true)
	require.NoError(t, err)
	assert.Equal(t, "14646", list.UserID)
	assert.Len(t, list.Recommendations, 3)
	assert.GreaterOrEqual(t, list.ProcessingTimeMs, 0.0)

	ins, err := recommender.Insight(ctx, "14646")
	require.NoError(t, err)
	assert.False(t, ins.IsNewUser)
	assert.NotEmpty(t, ins.TopCategories)

	fresh, err := recommender.Insight(ctx, "stranger")
	require.NoError(t, err)
	assert.True(t, fresh.IsNewUser)
}

func TestWireSearch(t *testing.T) {
	cfg := newWire(t)
	searcher := transport.NewSearchClient(cfg)

	resp, err := searcher.Search(context.Background(), "lunch bag under £2", "", 10)
	require.NoError(t, err)
	assert.Equal(t, "lunch bag under £2", resp.Query)
	require.NotNil(t, resp.QueryUnderstanding.MaxPrice)
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.LessOrEqual(t, r.Price, 2.0)
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.LessOrEqual(t, r.RelevanceScore, 1.0)
	}
}
