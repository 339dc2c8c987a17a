// Package api exposes the extraction pipeline over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/extract"
	"github.com/dharma-project/fir-extractor/internal/legal"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/processor"
	"github.com/dharma-project/fir-extractor/internal/storage"
	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

// maxUploadBytes bounds uploaded FIR files. Real FIR narratives are a few
// kilobytes; a megabyte is already suspicious.
const maxUploadBytes = 1 << 20

// exportFilename is the attachment name for the records export.
const exportFilename = "fir_records.json"

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	extractor  *extract.Extractor
	batch      *processor.BatchExtractor
	store      storage.RecordStore
	telemetry  *telemetry.Provider
	logger     logger.Logger
	batchLimit int
}

// NewHandlers creates the handler set.
func NewHandlers(ex *extract.Extractor, batch *processor.BatchExtractor, store storage.RecordStore, tp *telemetry.Provider, log logger.Logger, batchLimit int) *Handlers {
	return &Handlers{
		extractor:  ex,
		batch:      batch,
		store:      store,
		telemetry:  tp,
		logger:     log,
		batchLimit: batchLimit,
	}
}

// Extract handles POST /api/v1/extract: one raw FIR text in, one
// structured record out. The record is appended to the store before the
// response is written.
func (h *Handlers) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if extract.IsBlank(req.Text) {
		errorResponse(c, http.StatusBadRequest, "text is empty or whitespace-only")
		return
	}

	rec := h.extractor.Extract(c.Request.Context(), extract.InputAPI, req.Text)
	h.appendRecord(c, rec)

	c.JSON(http.StatusOK, rec)
}

// ExtractFile handles POST /api/v1/extract/file: a multipart .txt upload
// holding one FIR narrative.
func (h *Handlers) ExtractFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "missing file upload: "+err.Error())
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".txt" {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q, expected .txt", ext))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge, "file exceeds upload limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "open upload: "+err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}
	text := string(data)
	if extract.IsBlank(text) {
		errorResponse(c, http.StatusBadRequest, "uploaded file is empty or whitespace-only")
		return
	}

	rec := h.extractor.Extract(c.Request.Context(), extract.InputFile, text)
	h.appendRecord(c, rec)

	c.JSON(http.StatusOK, rec)
}

// ExtractBatch handles POST /api/v1/extract/batch: up to the configured
// limit of texts, processed in parallel, results in input order.
func (h *Handlers) ExtractBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if len(req.Texts) > h.batchLimit {
		errorResponse(c, http.StatusBadRequest,
			fmt.Sprintf("batch size %d exceeds limit %d", len(req.Texts), h.batchLimit))
		return
	}

	results := h.batch.Process(c.Request.Context(), req.Texts)

	resp := batchResponse{
		Count:   len(results),
		Results: make([]batchItem, 0, len(results)),
	}
	for _, res := range results {
		item := batchItem{Index: res.Index}
		if res.Err != nil {
			item.Error = res.Err.Error()
			resp.Failed++
		} else {
			item.Record = res.Record
			h.appendRecord(c, res.Record)
		}
		resp.Results = append(resp.Results, item)
	}

	c.JSON(http.StatusOK, resp)
}

// Records handles GET /api/v1/records: every stored record, append order.
func (h *Handlers) Records(c *gin.Context) {
	records, err := h.store.LoadAll(c.Request.Context())
	if err != nil {
		h.logger.Error("load records failed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "load records failed")
		return
	}
	c.JSON(http.StatusOK, recordsResponse{Count: len(records), Records: records})
}

// ExportRecords handles GET /api/v1/records/export: the stored records as
// an indented JSON file attachment. HTML escaping is disabled so rupee
// amounts and section citations survive verbatim.
func (h *Handlers) ExportRecords(c *gin.Context) {
	records, err := h.store.LoadAll(c.Request.Context())
	if err != nil {
		h.logger.Error("load records failed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "load records failed")
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		h.logger.Error("encode export failed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "encode export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// Rules handles GET /api/v1/rules/offences: the declarative offence
// trigger table and the statute mapping table, for inspection.
func (h *Handlers) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, rulesResponse{
		OffenceTriggers: extract.OffenceTriggers(),
		StatuteRules:    legal.Rules(),
	})
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready handles GET /ready: the service is ready once the store answers.
func (h *Handlers) Ready(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("readiness check failed", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// appendRecord persists an extracted record. Store failures are logged
// and counted but never fail the extraction response: the record already
// exists and the caller has it.
func (h *Handlers) appendRecord(c *gin.Context, rec *domain.FIRRecord) {
	ctx := c.Request.Context()
	err := h.store.Append(ctx, rec)
	if h.telemetry != nil {
		h.telemetry.RecordAppend(ctx, err)
	}
	if err != nil {
		h.logger.Error("append record failed", logger.Error(err))
	}
}
