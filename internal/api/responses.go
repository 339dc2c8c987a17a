package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/legal"
)

// extractRequest is the body for single-text extraction.
type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// batchRequest is the body for batch extraction.
type batchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1"`
}

// batchItem is the per-text outcome in a batch response. Exactly one of
// Record and Error is set.
type batchItem struct {
	Index  int               `json:"index"`
	Record *domain.FIRRecord `json:"record,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// batchResponse wraps all batch outcomes in input order.
type batchResponse struct {
	Count   int         `json:"count"`
	Failed  int         `json:"failed"`
	Results []batchItem `json:"results"`
}

// recordsResponse wraps the stored record listing.
type recordsResponse struct {
	Count   int                 `json:"count"`
	Records []*domain.FIRRecord `json:"records"`
}

// rulesResponse exposes the declarative rule tables for inspection.
type rulesResponse struct {
	OffenceTriggers map[string][]string `json:"offence_triggers"`
	StatuteRules    []legal.RuleView    `json:"statute_rules"`
}

func errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
