package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/extract"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/processor"
	"github.com/dharma-project/fir-extractor/internal/storage"
)

func newTestRouter(t *testing.T, batchLimit int) (*gin.Engine, storage.RecordStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "records.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ex := extract.New(log, nil, extract.Config{WitnessHeuristic: true})
	batch := processor.NewBatchExtractor(ex, nil, 4, log, nil)
	h := NewHandlers(ex, batch, store, nil, log, batchLimit)

	engine := gin.New()
	RegisterRoutes(engine, h, nil)
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestExtractEndpoint(t *testing.T) {
	engine, store := newTestRouter(t, 100)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/extract",
		gin.H{"text": "They snatched cash ₹5000 near Ramapuram culvert."})
	require.Equal(t, http.StatusOK, w.Code)

	rec := &domain.FIRRecord{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), rec))
	assert.Equal(t, "Ramapuram culvert", rec.Place)
	assert.True(t, rec.HasOffence(domain.OffenceRobbery))

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestExtractEndpointRejectsBlankText(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	for _, body := range []gin.H{
		{"text": ""},
		{"text": "   \n\t"},
		{},
	} {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/extract", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestExtractFileEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "report.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("The accused pointed a pistol at him."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	rec := &domain.FIRRecord{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), rec))
	assert.Contains(t, rec.WeaponsUsed, "Country-made pistol")
}

func TestExtractFileEndpointRejectsNonText(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("whatever"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchEndpoint(t *testing.T) {
	engine, store := newTestRouter(t, 100)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/extract/batch", gin.H{
		"texts": []string{
			"They snatched cash ₹100.",
			"   ",
			"They snatched cash ₹300.",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, []string{"cash ₹100"}, resp.Results[0].Record.PropertyLoss)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Nil(t, resp.Results[1].Record)
	assert.Equal(t, []string{"cash ₹300"}, resp.Results[2].Record.PropertyLoss)

	// Only successful extractions are persisted.
	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBatchEndpointEnforcesLimit(t *testing.T) {
	engine, _ := newTestRouter(t, 2)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/extract/batch",
		gin.H{"texts": []string{"a text", "b text", "c text"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/extract/batch",
		gin.H{"texts": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordsEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	for i := range 3 {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/extract",
			gin.H{"text": fmt.Sprintf("They snatched cash ₹%d.", 100*(i+1))})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp recordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Records, 3)
	assert.Equal(t, []string{"cash ₹100"}, resp.Records[0].PropertyLoss)
	assert.Equal(t, []string{"cash ₹300"}, resp.Records[2].PropertyLoss)
}

func TestExportEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/extract",
		gin.H{"text": "They snatched cash ₹5000 from him."})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/records/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "fir_records.json")

	body := w.Body.String()
	assert.Contains(t, body, "₹5000", "rupee sign must survive export unescaped")
	assert.NotContains(t, body, `\u20b9`, "encoder must not escape to unicode sequences")
	assert.Contains(t, body, "\n  ", "export must be indented")

	var records []*domain.FIRRecord
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	require.Len(t, records, 1)
}

func TestRulesEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/rules/offences", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.OffenceTriggers, string(domain.OffenceRobbery))
	assert.NotEmpty(t, resp.StatuteRules)
}

func TestHealthAndReady(t *testing.T) {
	engine, _ := newTestRouter(t, 100)

	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadyFailsAfterStoreClosed(t *testing.T) {
	engine, store := newTestRouter(t, 100)
	require.NoError(t, store.Close())

	w := doJSON(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	if !strings.Contains(w.Body.String(), "not ready") {
		t.Errorf("ready response = %s", w.Body.String())
	}
}
