package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LewyHua/RiceTrace-sub000/chaincode"
	"github.com/LewyHua/RiceTrace-sub000/config"
	"github.com/LewyHua/RiceTrace-sub000/internal/platform/logger"
)

// fakeLedger records invocations and plays back canned responses.
type fakeLedger struct {
	submits   []invocation
	evaluates []invocation
	response  []byte
	err       error
}

type invocation struct {
	fn   string
	args []string
}

func (f *fakeLedger) Submit(_ context.Context, fn string, args ...string) ([]byte, error) {
	f.submits = append(f.submits, invocation{fn: fn, args: args})
	return f.response, f.err
}

func (f *fakeLedger) Evaluate(_ context.Context, fn string, args ...string) ([]byte, error) {
	f.evaluates = append(f.evaluates, invocation{fn: fn, args: args})
	return f.response, f.err
}

func (f *fakeLedger) Close() error { return nil }

// mapCache is an in-process Cache for tests.
type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *mapCache) Set(_ context.Context, key string, value []byte) {
	m.entries[key] = value
}

func (m *mapCache) Invalidate(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(m.entries, k)
	}
}

func newTestRouter(t *testing.T, ledger *fakeLedger, cache Cache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("dev")
	require.NoError(t, err)
	handler := NewTraceHandler(ledger, cache, log, 1024*1024)
	return NewRouter(&config.GatewayConfig{Mode: "dev"}, handler)
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBatchSubmitsContractArgs(t *testing.T) {
	ledger := &fakeLedger{}
	router := newTestRouter(t, ledger, nil)

	w := doJSON(router, http.MethodPost, "/api/batches", gin.H{
		"batchId":     "batch_demo",
		"origin":      "Heilongjiang",
		"variety":     "Daohuaxiang",
		"harvestDate": "2024-09-28",
		"owner":       "FarmerZ",
		"initialStep": "Harvested",
		"report":      chaincode.ReportDetail{ReportID: "rep-1", ReportHash: "abc"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, ledger.submits, 1)
	call := ledger.submits[0]
	assert.Equal(t, "CreateBatch", call.fn)
	require.Len(t, call.args, 7)
	assert.Equal(t, "batch_demo", call.args[0])
	assert.Equal(t, "FarmerZ", call.args[5])
	assert.Equal(t, "Harvested", call.args[6])

	var report chaincode.ReportDetail
	require.NoError(t, json.Unmarshal([]byte(call.args[4]), &report))
	assert.Equal(t, "rep-1", report.ReportID)
}

func TestCreateBatchRejectsIncompletePayload(t *testing.T) {
	ledger := &fakeLedger{}
	router := newTestRouter(t, ledger, nil)

	w := doJSON(router, http.MethodPost, "/api/batches", gin.H{"batchId": "batch_demo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ledger.submits, "invalid payloads must not reach the ledger")
}

func TestLedgerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"duplicate", errors.New("chaincode response 500: already exists: batch batch_demo"), http.StatusConflict, "ALREADY_EXISTS"},
		{"missing", errors.New("chaincode response 500: not found: batch batch_x"), http.StatusNotFound, "NOT_FOUND"},
		{"denied", errors.New("chaincode response 500: permission denied: role viewer may not invoke CreateBatch"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"badreport", errors.New("chaincode response 500: malformed input: report detail"), http.StatusBadRequest, "MALFORMED_INPUT"},
		{"opaque", errors.New("rpc error: code = Unavailable"), http.StatusBadGateway, "LEDGER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{err: tt.err}
			router := newTestRouter(t, ledger, nil)

			w := doJSON(router, http.MethodPost, "/api/batches", gin.H{
				"batchId":     "batch_demo",
				"origin":      "o",
				"variety":     "v",
				"harvestDate": "d",
				"owner":       "w",
				"initialStep": "s",
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			var envelope ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestGetBatchReadThroughCache(t *testing.T) {
	payload := []byte(`{"batchId":"batch_demo"}`)
	ledger := &fakeLedger{response: payload}
	cache := newMapCache()
	router := newTestRouter(t, ledger, cache)

	w := doJSON(router, http.MethodGet, "/api/batches/batch_demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())
	require.Len(t, ledger.evaluates, 1)

	// Second read is served from cache without touching the ledger.
	w = doJSON(router, http.MethodGet, "/api/batches/batch_demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())
	assert.Len(t, ledger.evaluates, 1)
}

func TestAdvanceInvalidatesCachedViews(t *testing.T) {
	ledger := &fakeLedger{response: []byte(`{}`)}
	cache := newMapCache()
	cache.entries[batchCacheKey("batch_demo")] = []byte(`stale`)
	cache.entries[historyCacheKey("batch_demo")] = []byte(`stale`)
	cache.entries[statusCacheKey("batch_demo")] = []byte(`stale`)
	router := newTestRouter(t, ledger, cache)

	w := doJSON(router, http.MethodPost, "/api/batches/batch_demo/events", gin.H{
		"from": "FarmerZ", "to": "ProcessorA", "step": "Inspected",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cache.entries, "every cached view of the batch must be dropped")
}

func TestHeadBatch(t *testing.T) {
	ledger := &fakeLedger{response: []byte("true")}
	router := newTestRouter(t, ledger, nil)

	req := httptest.NewRequest(http.MethodHead, "/api/batches/batch_demo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	ledger.response = []byte("false")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildReportEndpoint(t *testing.T) {
	ledger := &fakeLedger{}
	router := newTestRouter(t, ledger, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", "inspection.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("reportType", "quality_inspection"))
	require.NoError(t, mw.WriteField("summary", "grade A"))
	require.NoError(t, mw.WriteField("verificationSource", "ProvincialLab"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var detail chaincode.ReportDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", detail.ReportHash)
	assert.Equal(t, "quality_inspection", detail.ReportType)
	assert.True(t, detail.IsVerified)
	assert.Equal(t, "ProvincialLab", detail.VerificationSource)
	assert.NotEmpty(t, detail.ReportID)
}

func TestSeedEndpoint(t *testing.T) {
	ledger := &fakeLedger{}
	router := newTestRouter(t, ledger, nil)

	w := doJSON(router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, ledger.submits, 1)
	assert.Equal(t, "Seed", ledger.submits[0].fn)
	assert.Empty(t, ledger.submits[0].args)
}

func TestListBatchesPassesThrough(t *testing.T) {
	payload, _ := json.Marshal([]chaincode.Batch{{BatchID: "batch_a"}, {BatchID: "batch_b"}})
	ledger := &fakeLedger{response: payload}
	router := newTestRouter(t, ledger, newMapCache())

	w := doJSON(router, http.MethodGet, "/api/batches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())

	// Listing is never cached.
	w = doJSON(router, http.MethodGet, "/api/batches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, ledger.evaluates, 2)
}

func TestCacheOutageFallsBackToLedger(t *testing.T) {
	payload := []byte(`{"batchId":"batch_demo"}`)
	ledger := &fakeLedger{response: payload}
	router := newTestRouter(t, ledger, nil) // cache disabled entirely

	for i := 0; i < 2; i++ {
		w := doJSON(router, http.MethodGet, "/api/batches/batch_demo", nil)
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i))
	}
	assert.Len(t, ledger.evaluates, 2)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	status, code := classify(errors.New("NOT FOUND: batch batch_x"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", code)

	status, _ = classify(errors.New(strings.ToUpper("permission denied")))
	assert.Equal(t, http.StatusForbidden, status)
}
