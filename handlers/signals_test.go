package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thesis-radar/models"
	"thesis-radar/store"
)

func seedTarget(t *testing.T, s store.Store, id, thesisID, name string) {
	t.Helper()
	require.NoError(t, s.CreateTarget(&models.Target{ID: id, ThesisID: thesisID, Name: name}))
}

func TestAppendAndListSignals(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "signals")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "POST", "/api/signals", gin.H{
		"target_id": "x1", "score": 64, "signal_text": "new funding round",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/signals", gin.H{"score": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, "target_id is required")

	w = doJSON(t, r, "GET", "/api/targets/x1/signals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	signals := decode[[]models.SignalEvent](t, w)
	require.Len(t, signals, 1)
	assert.Equal(t, 64, signals[0].Score)
	assert.Equal(t, "new funding round", signals[0].SignalText)
}

func TestDeepDiveCacheMissIsNull(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "dives")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "GET", "/api/targets/x1/deep-dive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestDeepDiveUpsertKeyedByTarget(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "dives")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "POST", "/api/deep-dives", gin.H{
		"id": "d1", "target_id": "x1", "content": gin.H{"overview": []string{"v1"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same target, different caller-generated id: the cache is replaced,
	// not duplicated.
	w = doJSON(t, r, "POST", "/api/deep-dives", gin.H{
		"id": "d2", "target_id": "x1", "content": `{"overview":["v2"]}`,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "d2", decode[map[string]string](t, w)["id"])

	w = doJSON(t, r, "GET", "/api/targets/x1/deep-dive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dive := decode[models.DeepDive](t, w)
	assert.Equal(t, "d2", dive.ID)
	assert.JSONEq(t, `{"overview":["v2"]}`, dive.Content)
}

func TestDeepDiveContentSerializedWhenObject(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "dives")
	seedTarget(t, s, "x1", "t1", "Acme")

	w := doJSON(t, r, "POST", "/api/deep-dives", gin.H{
		"target_id": "x1", "content": gin.H{"overview": []string{"built it"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]string](t, w)["id"]
	assert.NotEmpty(t, id, "server assigns an id when the caller omits one")

	dive, err := s.GetDeepDive("x1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"overview":["built it"]}`, dive.Content)
}

func TestStatsTotalsMatchBreakdown(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "one")
	seedThesis(t, s, "t2", "two")
	seedTarget(t, s, "x1", "t1", "Acme")
	seedTarget(t, s, "x2", "t1", "Globex")
	seedTarget(t, s, "y1", "t2", "Initech")
	require.NoError(t, s.AppendSignal(&models.SignalEvent{TargetID: "x1", Score: 10}))
	require.NoError(t, s.AppendSignal(&models.SignalEvent{TargetID: "y1", Score: 20}))

	w := doJSON(t, r, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[store.Stats](t, w)

	assert.Equal(t, int64(2), stats.TotalTheses)
	assert.Equal(t, int64(3), stats.TotalTargets)
	assert.Equal(t, int64(2), stats.WeeklySignals)

	total := 0
	for _, ts := range stats.ThesesStats {
		total += ts.TargetsCount
	}
	assert.Equal(t, int(stats.TotalTargets), total)
}
