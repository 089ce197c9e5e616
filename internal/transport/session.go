package transport

import (
	"context"
	"net/url"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

// TurnResult is the backend's verdict on one submitted response. When
// Complete is false, NextIndex is the server-chosen index of the following
// question; the server may skip, repeat or branch, so callers must adopt it
// verbatim rather than incrementing locally.
type TurnResult struct {
	Complete        bool
	NextIndex       int
	NextQuestion    string
	Recommendations []catalog.RecommendationItem
}

// SessionClient issues the three session-scoped operations: init, respond
// and refine. It holds no session state of its own.
type SessionClient struct {
	client
}

func NewSessionClient(cfg Config) *SessionClient {
	return &SessionClient{client: newClient(cfg)}
}

// Init opens a session and returns the backend's question sequence. An
// empty sequence is a valid result.
func (c *SessionClient) Init(ctx context.Context, sessionID string) ([]string, error) {
	var out struct {
		SessionID string   `json:"session_id"`
		Questions []string `json:"questions"`
	}
	path := "/session/init?session_id=" + url.QueryEscape(sessionID)
	if err := c.postJSON(ctx, "session.init", path, nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// Respond submits the response for one (session, question index) pair.
func (c *SessionClient) Respond(ctx context.Context, sessionID string, questionIndex int, text string) (TurnResult, error) {
	payload := struct {
		SessionID     string `json:"session_id"`
		QuestionIndex int    `json:"question_index"`
		Response      string `json:"response"`
	}{sessionID, questionIndex, text}

	var out struct {
		Complete        bool                         `json:"complete"`
		QuestionIndex   *int                         `json:"question_index"`
		NextQuestion    string                       `json:"next_question"`
		Recommendations []catalog.RecommendationItem `json:"recommendations"`
	}
	if err := c.postJSON(ctx, "session.respond", "/session/respond", payload, &out); err != nil {
		return TurnResult{}, err
	}

	res := TurnResult{
		Complete:        out.Complete,
		NextQuestion:    out.NextQuestion,
		Recommendations: out.Recommendations,
	}
	if !out.Complete {
		if out.QuestionIndex == nil {
			return TurnResult{}, &Error{
				Kind: KindMalformed,
				Op:   "session.respond",
				Err:  errMissingNextIndex,
			}
		}
		res.NextIndex = *out.QuestionIndex
	}
	return res, nil
}

// Refine trades liked/disliked product IDs for a refreshed recommendation
// list. Only meaningful once the session has completed.
func (c *SessionClient) Refine(ctx context.Context, sessionID string, liked, disliked []string) ([]catalog.RecommendationItem, error) {
	payload := struct {
		SessionID string `json:"session_id"`
		Feedback  struct {
			Liked    []string `json:"liked"`
			Disliked []string `json:"disliked"`
		} `json:"feedback"`
	}{SessionID: sessionID}
	payload.Feedback.Liked = liked
	payload.Feedback.Disliked = disliked

	var out struct {
		SessionID string                       `json:"session_id"`
		Refined   []catalog.RecommendationItem `json:"refined_recommendations"`
	}
	if err := c.postJSON(ctx, "session.refine", "/session/refine", payload, &out); err != nil {
		return nil, err
	}
	return out.Refined, nil
}
