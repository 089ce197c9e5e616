// Package stub is an in-memory stand-in for the recommendation backend. It
// honors the wire contract the real service exposes (session init, respond
// and refine, ranked recommendations, user insight, natural-language search)
// with deterministic data, so the client can be developed and integration
// tested without the real service or its models.
package stub

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

var ErrSessionNotFound = errors.New("session not found")

// defaultQuestions mirror the backend's fallback onboarding questions.
var defaultQuestions = []string{
	"What type of products are you interested in?",
	"What's your typical budget range?",
	"Are you shopping for yourself or as a gift?",
	"Do you prefer trendy or classic styles?",
}

// session is one server-side onboarding conversation.
type session struct {
	id        string
	questions []string
	responses map[int]string
	complete  bool
	createdAt time.Time
}

// profile is a canned purchase history for a known demo user.
type profile struct {
	totalSpend    float64
	purchaseCount float64
	topCategories []string
}

// Service owns all stub state behind one lock, in the same shape as the
// real backend's in-memory session store.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	products []Product
	cats     []string
	profiles map[string]profile
}

func NewService() *Service {
	products := seedProducts()
	return &Service{
		sessions: make(map[string]*session),
		products: products,
		cats:     categories(products),
		profiles: map[string]profile{
			"12583": {totalSpend: 1842.60, purchaseCount: 46, topCategories: []string{"Kitchen", "Party"}},
			"14646": {totalSpend: 27962.25, purchaseCount: 128, topCategories: []string{"Home Decor", "Bags", "Kitchen"}},
			"17850": {totalSpend: 332.15, purchaseCount: 9, topCategories: []string{"Seasonal"}},
		},
	}
}

// InitSession registers a session under the client-generated identifier and
// returns the question sequence. Re-initializing an existing id replaces it.
func (s *Service) InitSession(_ context.Context, sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]string, len(defaultQuestions))
	copy(questions, defaultQuestions)

	s.sessions[sessionID] = &session{
		id:        sessionID,
		questions: questions,
		responses: make(map[int]string),
		createdAt: time.Now().UTC(),
	}
	return questions
}

// TurnOutcome is the verdict for one submitted response.
type TurnOutcome struct {
	Complete        bool
	NextIndex       int
	NextQuestion    string
	Recommendations []catalog.RecommendationItem
}

// SubmitResponse records a response and either advances to the next
// question or closes the session with recommendations. Out-of-range indexes
// are not stored but still advance the round, matching the real backend.
func (s *Service) SubmitResponse(_ context.Context, sessionID string, questionIndex int, text string) (TurnOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return TurnOutcome{}, ErrSessionNotFound
	}

	if questionIndex >= 0 && questionIndex < len(sess.questions) {
		sess.responses[questionIndex] = text
	}

	next := questionIndex + 1
	if next < len(sess.questions) {
		return TurnOutcome{
			NextIndex:    next,
			NextQuestion: sess.questions[next],
		}, nil
	}

	sess.complete = true
	return TurnOutcome{
		Complete:        true,
		Recommendations: s.coldStartPicksLocked(sess),
	}, nil
}

// coldStartPicksLocked derives recommendations from the recorded answers:
// categories mentioned in any response are preferred, topped up with the
// most popular products overall.
func (s *Service) coldStartPicksLocked(sess *session) []catalog.RecommendationItem {
	answered := strings.ToLower(strings.Join(mapValues(sess.responses), " "))

	var preferred []string
	for _, c := range s.cats {
		if strings.Contains(answered, strings.ToLower(c)) {
			preferred = append(preferred, c)
		}
	}

	ranked := s.byPopularity()
	var out []catalog.RecommendationItem
	seen := make(map[string]bool)

	add := func(p Product, reasoning, priority string) {
		if seen[p.StockCode] || len(out) >= 10 {
			return
		}
		seen[p.StockCode] = true
		out = append(out, catalog.RecommendationItem{
			ProductID:   p.StockCode,
			ProductName: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Reasoning:   reasoning,
			Priority:    priority,
		})
	}

	for _, cat := range preferred {
		for _, p := range ranked {
			if p.Category == cat {
				add(p, fmt.Sprintf("You mentioned an interest in %s", cat), "high")
			}
		}
	}
	for _, p := range ranked {
		add(p, "Popular with shoppers like you", "medium")
	}
	return out
}

// Refine swaps the completed session's list for products similar to the
// liked ones (same category, minus anything already voted on).
func (s *Service) Refine(_ context.Context, sessionID string, liked, disliked []string) ([]catalog.RecommendationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}

	voted := make(map[string]bool)
	for _, id := range liked {
		voted[id] = true
	}
	for _, id := range disliked {
		voted[id] = true
	}

	likedCats := make(map[string]bool)
	for _, id := range liked {
		for _, p := range s.products {
			if p.StockCode == id {
				likedCats[p.Category] = true
			}
		}
	}

	var out []catalog.RecommendationItem
	for _, p := range s.byPopularity() {
		if len(out) >= 10 || voted[p.StockCode] || !likedCats[p.Category] {
			continue
		}
		out = append(out, catalog.RecommendationItem{
			ProductID:   p.StockCode,
			ProductName: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Reasoning:   fmt.Sprintf("Similar to products you liked in %s", p.Category),
		})
	}
	return out, nil
}

// Recommendations builds the ranked list for a user. Known demo users get
// their top categories boosted; everyone else gets the popularity order.
func (s *Service) Recommendations(_ context.Context, userID string, topK int, includeExplanations bool) catalog.RecommendationList {
	started := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	prof, known := s.profiles[userID]
	boost := make(map[string]bool)
	if known {
		for _, c := range prof.topCategories {
			boost[c] = true
		}
	}

	ranked := s.byPopularity()
	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := boost[ranked[i].Category], boost[ranked[j].Category]
		if bi != bj {
			return bi
		}
		return ranked[i].Popularity > ranked[j].Popularity
	})

	if topK <= 0 || topK > len(ranked) {
		topK = len(ranked)
	}

	items := make([]catalog.RecommendationItem, 0, topK)
	for _, p := range ranked[:topK] {
		item := catalog.RecommendationItem{
			ProductID:   p.StockCode,
			ProductName: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			MatchScore:  p.Popularity,
		}
		if includeExplanations {
			if boost[p.Category] {
				item.Explanation = fmt.Sprintf("You buy %s items often", p.Category)
			} else {
				item.Explanation = "Recommended based on your shopping preferences."
			}
		}
		items = append(items, item)
	}

	return catalog.RecommendationList{
		UserID:           userID,
		Recommendations:  items,
		ProcessingTimeMs: elapsedMs(started),
		Strategy:         "popularity",
	}
}

// Insight reports the canned profile, or the new-user message when the
// user is unknown.
func (s *Service) Insight(_ context.Context, userID string) catalog.UserInsight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prof, known := s.profiles[userID]
	if !known {
		return catalog.UserInsight{
			UserID:    userID,
			IsNewUser: true,
			Insight:   "New customer - no purchase history yet. Great opportunity to explore our catalog!",
		}
	}
	return catalog.UserInsight{
		UserID:        userID,
		Insight:       fmt.Sprintf("A regular shopper focused on %s.", strings.Join(prof.topCategories, " and ")),
		TotalSpend:    prof.totalSpend,
		PurchaseCount: prof.purchaseCount,
		TopCategories: prof.topCategories,
	}
}

// Search scores products against the query text and an extracted
// understanding (category mention, "under £N" price cap, leftover feature
// words).
func (s *Service) Search(_ context.Context, query, userID string, topK int) catalog.SearchResponse {
	started := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	understanding := understand(query, s.cats)
	if topK <= 0 {
		topK = 10
	}

	type scored struct {
		p     Product
		score float64
	}
	var matches []scored
	for _, p := range s.products {
		if understanding.Category != "" && p.Category != understanding.Category {
			continue
		}
		if understanding.MaxPrice != nil && p.Price > *understanding.MaxPrice {
			continue
		}
		score := textScore(p, understanding.Features)
		if score == 0 && understanding.Category == "" {
			continue
		}
		matches = append(matches, scored{p, score + p.Popularity/10})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > topK {
		matches = matches[:topK]
	}

	results := make([]catalog.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, catalog.SearchResult{
			ProductID:      m.p.StockCode,
			ProductName:    m.p.Description,
			Category:       m.p.Category,
			Price:          m.p.Price,
			RelevanceScore: clamp01(m.score),
			Explanation:    fmt.Sprintf("Matches your search for %s", understanding.Intent),
		})
	}

	return catalog.SearchResponse{
		Query:              query,
		QueryUnderstanding: understanding,
		Results:            results,
		ResultCount:        len(results),
		ProcessingTimeMs:   elapsedMs(started),
	}
}

// understand extracts a query understanding: category mention, an
// "under <price>" cap, and the remaining words as features.
func understand(query string, cats []string) catalog.QueryUnderstanding {
	u := catalog.QueryUnderstanding{Intent: strings.TrimSpace(query)}
	u.Category = matchCategory(query, cats)

	words := strings.Fields(strings.ToLower(query))
	for i, w := range words {
		if (w == "under" || w == "below") && i+1 < len(words) {
			raw := strings.TrimLeft(words[i+1], "£$")
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
				u.MaxPrice = &v
			}
		}
	}

	stop := map[string]bool{
		"a": true, "an": true, "the": true, "for": true, "i": true,
		"want": true, "need": true, "under": true, "below": true,
		"something": true, "me": true, "show": true, "find": true,
	}
	for _, w := range words {
		w = strings.Trim(w, "£$.,!?")
		if w == "" || stop[w] {
			continue
		}
		if _, err := strconv.ParseFloat(w, 64); err == nil {
			continue
		}
		u.Features = append(u.Features, w)
	}
	return u
}

func textScore(p Product, features []string) float64 {
	haystack := strings.ToLower(p.Description + " " + p.Category)
	var score float64
	for _, f := range features {
		if strings.Contains(haystack, f) {
			score += 0.4
		}
	}
	return score
}

func (s *Service) byPopularity() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	return out
}

func mapValues(m map[int]string) []string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]string, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func elapsedMs(started time.Time) float64 {
	ms := float64(time.Since(started).Microseconds()) / 1000
	if ms < 0 {
		return 0
	}
	return ms
}
