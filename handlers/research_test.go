package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"thesis-radar/ai"
	"thesis-radar/models"
	"thesis-radar/store"
)

// stubGenerator answers model calls from a dispatch function so the research
// routes can be exercised end to end without the network.
type stubGenerator struct {
	mu      sync.Mutex
	calls   int
	respond func(prompt string) (string, error)
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ *genai.Schema) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.respond(prompt)
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newResearchRouter(s store.Store, respond func(prompt string) (string, error)) (*gin.Engine, *stubGenerator) {
	gen := &stubGenerator{respond: respond}
	return newTestRouter(s, ai.NewClientWithGenerator(gen, zap.NewNop())), gen
}

func TestResearchUnavailableWithoutClient(t *testing.T) {
	r := newTestRouter(store.NewMemoryStore(), nil)

	w := doJSON(t, r, "POST", "/api/research/suggest-theses", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "GEMINI_API_KEY not configured", decode[map[string]string](t, w)["error"])
}

func TestSuggestThesesEndpoint(t *testing.T) {
	r, _ := newResearchRouter(store.NewMemoryStore(), func(string) (string, error) {
		return `[{"title": "Edge Data", "description": "d", "relevance_score": 88, "rationale": "r"}]`, nil
	})

	w := doJSON(t, r, "POST", "/api/research/suggest-theses", gin.H{"constraints": "infra only"})
	require.Equal(t, http.StatusOK, w.Code)
	theses := decode[[]ai.SuggestedThesis](t, w)
	require.Len(t, theses, 1)
	assert.Equal(t, "Edge Data", theses[0].Title)
}

func TestCalibrateThesisMissingThesis(t *testing.T) {
	r, gen := newResearchRouter(store.NewMemoryStore(), func(string) (string, error) {
		return `{}`, nil
	})

	w := doJSON(t, r, "POST", "/api/research/theses/nope/calibrate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, gen.callCount())
}

func TestExecuteSearchPersistsTargets(t *testing.T) {
	s := store.NewMemoryStore()
	r, _ := newResearchRouter(s, func(string) (string, error) {
		return `[{"name": "Acme", "one_liner": "edge db", "stage": "Series A",
			"fit_rating": "Strong", "signal_score": 85, "top_signal": "hiring spree"}]`, nil
	})
	seedThesis(t, s, "t1", "search")

	w := doJSON(t, r, "POST", "/api/research/theses/t1/execute-search", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	targets := decode[[]models.Target](t, w)
	require.Len(t, targets, 1)
	assert.Equal(t, "Acme", targets[0].Name)
	assert.NotEmpty(t, targets[0].ID, "server assigns ids to discovered targets")

	stored, err := s.ListTargets("t1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 85, stored[0].SignalScore)
}

func TestRefreshSignalsPatchesAndRecordsHistory(t *testing.T) {
	s := store.NewMemoryStore()
	r, _ := newResearchRouter(s, func(prompt string) (string, error) {
		assert.NotContains(t, prompt, "Dismissed Inc")
		return `[{"name": "Acme", "signal_score": 91, "top_signal": "layoffs at competitor"}]`, nil
	})
	seedThesis(t, s, "t1", "refresh")
	seedTarget(t, s, "x1", "t1", "Acme")
	require.NoError(t, s.CreateTarget(&models.Target{ID: "x2", ThesisID: "t1", Name: "Dismissed Inc", IsDismissed: 1}))

	w := doJSON(t, r, "POST", "/api/research/theses/t1/refresh-signals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	target, err := s.GetTarget("x1")
	require.NoError(t, err)
	assert.Equal(t, 91, target.SignalScore)
	assert.Equal(t, "layoffs at competitor", target.TopSignal)

	signals, err := s.ListSignals("x1")
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, 91, signals[0].Score)
}

func TestGenerateDeepDiveCachesResult(t *testing.T) {
	s := store.NewMemoryStore()
	r, gen := newResearchRouter(s, func(prompt string) (string, error) {
		if strings.Contains(prompt, "Financials (Estimated)") {
			return `{"financials": ["~$5M ARR"]}`, nil
		}
		return `{"overview": ["edge db company"]}`, nil
	})
	seedThesis(t, s, "t1", "dives")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "POST", "/api/research/targets/x1/deep-dive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dive := decode[models.DeepDive](t, w)
	assert.Equal(t, "x1", dive.TargetID)
	assert.Contains(t, dive.Content, "edge db company")
	assert.Equal(t, 2, gen.callCount(), "strategic and financial halves run as separate calls")

	// Second request serves the cache without touching the model.
	w = doJSON(t, r, "POST", "/api/research/targets/x1/deep-dive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dive.ID, decode[models.DeepDive](t, w).ID)
	assert.Equal(t, 2, gen.callCount())

	// force regenerates and replaces the cached row.
	w = doJSON(t, r, "POST", "/api/research/targets/x1/deep-dive", gin.H{"force": true})
	require.Equal(t, http.StatusOK, w.Code)
	regenerated := decode[models.DeepDive](t, w)
	assert.NotEqual(t, dive.ID, regenerated.ID)
	assert.Equal(t, 4, gen.callCount())

	cached, err := s.GetDeepDive("x1")
	require.NoError(t, err)
	assert.Equal(t, regenerated.ID, cached.ID)
}

func TestGenerateMarketMapEndpoint(t *testing.T) {
	s := store.NewMemoryStore()
	r, _ := newResearchRouter(s, func(string) (string, error) {
		return `{"categories": [{"name": "Strategic Startups", "description": "early",
			"companies": [{"name": "Acme", "rationale": "tracked"}]}]}`, nil
	})
	seedThesis(t, s, "t1", "map")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "POST", "/api/research/theses/t1/market-map", nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode[ai.MarketMap](t, w)
	require.Len(t, m.Categories, 1)
	assert.Equal(t, "Strategic Startups", m.Categories[0].Name)
}

func TestResearchModelFailureIsBadGateway(t *testing.T) {
	s := store.NewMemoryStore()
	r, _ := newResearchRouter(s, func(string) (string, error) {
		return `not json`, nil
	})
	seedThesis(t, s, "t1", "broken")

	w := doJSON(t, r, "POST", "/api/research/theses/t1/calibrate", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
