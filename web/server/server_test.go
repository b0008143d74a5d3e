package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func traceScene() map[string]interface{} {
	return map[string]interface{}{
		"vessel": map[string]interface{}{
			"kind": "toroidal",
			"vertices": [][2]float64{
				{1, -0.5}, {2, -0.5}, {2, 0.5}, {1, 0.5},
			},
		},
		"rays": map[string]interface{}{
			"origins":    [][3]float64{{3, 0, 0}, {3, 0, 5}},
			"directions": [][3]float64{{-1, 0, 0}, {0, 0, 1}},
		},
	}
}

func TestHandleTrace(t *testing.T) {
	h := NewServer(0).Router()
	rr := post(t, h, "/api/trace", traceScene())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp TraceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Hit, 2)

	assert.True(t, resp.Hit[0])
	assert.InDelta(t, 1, resp.KIn[0], 1e-9)
	assert.InDelta(t, 2, resp.KOut[0], 1e-9)
	assert.Equal(t, [3]float64{1, 0, 0}, resp.VPerp[0])
	assert.Equal(t, [3]int{0, 0, 3}, resp.Index[0])

	// The miss is encoded with zero coefficients, not NaN
	assert.False(t, resp.Hit[1])
	assert.Zero(t, resp.KIn[1])
	assert.Zero(t, resp.KOut[1])
}

func TestHandleTraceBadRequests(t *testing.T) {
	h := NewServer(0).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/trace", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	bad := traceScene()
	bad["vessel"].(map[string]interface{})["kind"] = "cartesian"
	rr = post(t, h, "/api/trace", bad)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Zero direction fails batch validation
	bad = traceScene()
	bad["rays"] = map[string]interface{}{
		"origins":    [][3]float64{{3, 0, 0}},
		"directions": [][3]float64{{0, 0, 0}},
	}
	rr = post(t, h, "/api/trace", bad)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSample(t *testing.T) {
	h := NewServer(0).Router()
	rr := post(t, h, "/api/sample", SampleRequest{
		KMin: 0, KMax: 10, Step: 3, Mode: "abs", Rule: "sum",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SampleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Cells)
	assert.InDelta(t, 2.5, resp.Resolution, 1e-12)
	require.Len(t, resp.K, 4)
	assert.InDelta(t, 1.25, resp.K[0], 1e-12)
}

func TestHandleSampleBadRequests(t *testing.T) {
	h := NewServer(0).Router()

	rr := post(t, h, "/api/sample", SampleRequest{KMin: 0, KMax: 10, Step: 3, Rule: "gauss"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, h, "/api/sample", SampleRequest{KMin: 5, KMax: 5, Step: 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleHealth(t *testing.T) {
	h := NewServer(0).Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
