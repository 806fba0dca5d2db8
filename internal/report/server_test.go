package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
)

func newTestServer(t *testing.T) (*Server, *sqlite.Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := sqlite.Open(filepath.Join(dir, "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	chartsDir := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(chartsDir, 0o755))

	return New("127.0.0.1:0", store, chartsDir, zap.NewNop().Sugar()), store, chartsDir
}

func (s *Server) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealthMsgpack(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/health?format=msgpack", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUnitsAndRuns(t *testing.T) {
	s, store, _ := newTestServer(t)
	ctx := context.Background()

	_, err := store.InsertRun(ctx, sqlite.RunRecord{
		Unit: "DE_KN_residential1_pv", Kind: sqlite.KindPVDay,
		Season: "spring", Weather: "sunny", MinuteRes: 3, Samples: []float64{0, 0.5, 1},
	})
	require.NoError(t, err)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/units", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var units struct {
		Units []string `json:"units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &units))
	assert.Equal(t, []string{"DE_KN_residential1_pv"}, units.Units)

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/runs?unit=DE_KN_residential1_pv&kind=pv_day", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var runs struct {
		Unit string             `json:"unit"`
		Runs []sqlite.RunRecord `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs.Runs, 1)
	assert.Equal(t, "sunny", runs.Runs[0].Weather)
	assert.Equal(t, []float64{0, 0.5, 1}, runs.Runs[0].Samples)
}

func TestRunsRequiresUnit(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/thresholds", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThresholds(t *testing.T) {
	s, store, _ := newTestServer(t)

	require.NoError(t, store.UpsertThreshold(context.Background(), sqlite.ThresholdRecord{
		Unit: "dishwashers", ClusterIndex: 0, Threshold: 1.5, TrainingCount: 10, ClassifiedCount: 4,
	}))

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/thresholds?unit=dishwashers", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Thresholds []sqlite.ThresholdRecord `json:"thresholds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Thresholds, 1)
	assert.Equal(t, 1.5, body.Thresholds[0].Threshold)
}

func TestChartFiles(t *testing.T) {
	s, _, chartsDir := newTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(chartsDir, "test.html"), []byte("<html></html>"), 0o644))

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/charts/test.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html>")
}
