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

func TestBulkCreateScenario(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)

	w := doJSON(t, r, "POST", "/api/theses", gin.H{
		"id": "t1", "title": "Edge DBs", "description": "...",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "t1", decode[map[string]string](t, w)["id"])

	w = doJSON(t, r, "POST", "/api/targets/bulk", gin.H{
		"thesis_id": "t1",
		"targets":   []gin.H{{"id": "x1", "name": "Acme"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["success"])

	w = doJSON(t, r, "GET", "/api/theses/t1/targets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	targets := decode[[]models.Target](t, w)
	require.Len(t, targets, 1)
	assert.Equal(t, "Acme", targets[0].Name)
	assert.Equal(t, 0, targets[0].SignalScore)
}

func TestBulkCreateRejectsNonArray(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "bulk")

	w := doJSON(t, r, "POST", "/api/targets/bulk", gin.H{
		"thesis_id": "t1",
		"targets":   "not an array",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/targets/bulk", gin.H{"thesis_id": "t1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// JSON null is not an array either.
	w = doJSON(t, r, "POST", "/api/targets/bulk", gin.H{
		"thesis_id": "t1",
		"targets":   nil,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was written on either attempt.
	w = doJSON(t, r, "GET", "/api/theses/t1/targets", nil)
	assert.Empty(t, decode[[]models.Target](t, w))
}

func TestCreateTarget(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "targets")

	w := doJSON(t, r, "POST", "/api/targets", gin.H{
		"id": "x1", "thesis_id": "t1", "name": "Acme", "signal_score": 42,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "x1", decode[map[string]string](t, w)["id"])

	// thesis_id is mandatory for a single create.
	w = doJSON(t, r, "POST", "/api/targets", gin.H{"id": "x2", "name": "Globex"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchTargetIsRestricted(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "patching")
	require.NoError(t, s.CreateTarget(&models.Target{
		ID: "x1", ThesisID: "t1", Name: "Acme", OneLiner: "edge things", SignalScore: 42,
	}))

	w := doJSON(t, r, "PATCH", "/api/targets/x1", gin.H{"is_pinned": 1})
	require.Equal(t, http.StatusOK, w.Code)

	got, err := s.GetTarget("x1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.IsPinned)
	assert.Equal(t, 42, got.SignalScore)
	assert.Equal(t, "edge things", got.OneLiner)

	w = doJSON(t, r, "PATCH", "/api/targets/ghost", gin.H{"is_pinned": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A patch with no recognized fields must not touch the row.
	w = doJSON(t, r, "PATCH", "/api/targets/x1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	after, err := s.GetTarget("x1")
	require.NoError(t, err)
	assert.Equal(t, got.LastUpdated, after.LastUpdated)
}

func TestDeleteTarget(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "deleting")
	require.NoError(t, s.CreateTarget(&models.Target{ID: "x1", ThesisID: "t1", Name: "Acme"}))

	w := doJSON(t, r, "DELETE", "/api/targets/x1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/theses/t1/targets", nil)
	assert.Empty(t, decode[[]models.Target](t, w))
}

func TestListTargetsOrderedByScore(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s, nil)
	seedThesis(t, s, "t1", "ordering")
	require.NoError(t, s.CreateTarget(&models.Target{ID: "low", ThesisID: "t1", Name: "Low", SignalScore: 5}))
	require.NoError(t, s.CreateTarget(&models.Target{ID: "high", ThesisID: "t1", Name: "High", SignalScore: 95}))

	w := doJSON(t, r, "GET", "/api/theses/t1/targets", nil)
	targets := decode[[]models.Target](t, w)
	require.Len(t, targets, 2)
	assert.Equal(t, "High", targets[0].Name)
}
