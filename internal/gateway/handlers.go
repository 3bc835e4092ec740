package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LewyHua/RiceTrace-sub000/chaincode"
	"github.com/LewyHua/RiceTrace-sub000/internal/fabric"
	"github.com/LewyHua/RiceTrace-sub000/internal/platform/logger"
)

// TraceHandler exposes the contract's transaction and query operations over
// HTTP. All mutable state stays on the ledger; the handler only translates
// payloads, caches reads, and maps contract error kinds to status codes.
type TraceHandler struct {
	ledger         fabric.LedgerClient
	cache          Cache
	reports        *ReportBuilder
	log            *logger.Logger
	maxUploadBytes int64
}

func NewTraceHandler(ledger fabric.LedgerClient, cache Cache, log *logger.Logger, maxUploadBytes int64) *TraceHandler {
	return &TraceHandler{
		ledger:         ledger,
		cache:          cache,
		reports:        &ReportBuilder{},
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

type createBatchRequest struct {
	BatchID     string                 `json:"batchId" binding:"required"`
	Origin      string                 `json:"origin" binding:"required"`
	Variety     string                 `json:"variety" binding:"required"`
	HarvestDate string                 `json:"harvestDate" binding:"required"`
	Owner       string                 `json:"owner" binding:"required"`
	InitialStep string                 `json:"initialStep" binding:"required"`
	Report      chaincode.ReportDetail `json:"report"`
}

// CreateBatch handles POST /api/batches.
func (h *TraceHandler) CreateBatch(c *gin.Context) {
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}
	reportJSON, err := json.Marshal(req.Report)
	if err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	_, err = h.ledger.Submit(c.Request.Context(), "CreateBatch",
		req.BatchID, req.Origin, req.Variety, req.HarvestDate, string(reportJSON), req.Owner, req.InitialStep)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	h.invalidateBatch(c, req.BatchID)
	c.JSON(http.StatusCreated, gin.H{"batchId": req.BatchID})
}

type advanceBatchRequest struct {
	From   string                 `json:"from" binding:"required"`
	To     string                 `json:"to" binding:"required"`
	Step   string                 `json:"step" binding:"required"`
	Report chaincode.ReportDetail `json:"report"`
}

// AdvanceBatch handles POST /api/batches/:id/events.
func (h *TraceHandler) AdvanceBatch(c *gin.Context) {
	batchID := c.Param("id")
	var req advanceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}
	reportJSON, err := json.Marshal(req.Report)
	if err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	_, err = h.ledger.Submit(c.Request.Context(), "AdvanceAndTransfer",
		batchID, req.From, req.To, req.Step, string(reportJSON))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	h.invalidateBatch(c, batchID)
	c.JSON(http.StatusOK, gin.H{"batchId": batchID, "step": req.Step, "owner": req.To})
}

type createProductRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	BatchID     string `json:"batchId" binding:"required"`
	PackageDate string `json:"packageDate" binding:"required"`
	Owner       string `json:"owner" binding:"required"`
}

// CreateProduct handles POST /api/products.
func (h *TraceHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	_, err := h.ledger.Submit(c.Request.Context(), "CreateProduct",
		req.ProductID, req.BatchID, req.PackageDate, req.Owner)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), productCacheKey(req.ProductID))
	}
	c.JSON(http.StatusCreated, gin.H{"productId": req.ProductID})
}

// Seed handles POST /api/seed.
func (h *TraceHandler) Seed(c *gin.Context) {
	if _, err := h.ledger.Submit(c.Request.Context(), "Seed"); err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "seeded"})
}

// GetBatch handles GET /api/batches/:id.
func (h *TraceHandler) GetBatch(c *gin.Context) {
	h.cachedEvaluate(c, batchCacheKey(c.Param("id")), "ReadBatch", c.Param("id"))
}

// GetBatchHistory handles GET /api/batches/:id/history.
func (h *TraceHandler) GetBatchHistory(c *gin.Context) {
	h.cachedEvaluate(c, historyCacheKey(c.Param("id")), "GetBatchHistory", c.Param("id"))
}

// GetBatchStatus handles GET /api/batches/:id/status.
func (h *TraceHandler) GetBatchStatus(c *gin.Context) {
	h.cachedEvaluate(c, statusCacheKey(c.Param("id")), "GetBatchCurrentStatus", c.Param("id"))
}

// GetProduct handles GET /api/products/:id.
func (h *TraceHandler) GetProduct(c *gin.Context) {
	h.cachedEvaluate(c, productCacheKey(c.Param("id")), "ReadProduct", c.Param("id"))
}

// ListBatches handles GET /api/batches. The full listing is not cached; it
// is an operator query, not a consumer-facing lookup.
func (h *TraceHandler) ListBatches(c *gin.Context) {
	data, err := h.ledger.Evaluate(c.Request.Context(), "GetAllBatches")
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// HeadBatch handles HEAD /api/batches/:id (existence probe).
func (h *TraceHandler) HeadBatch(c *gin.Context) {
	data, err := h.ledger.Evaluate(c.Request.Context(), "BatchExists", c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	if string(data) == "true" {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusNotFound)
}

// BuildReport handles POST /api/reports: multipart upload of an evidence
// document, answered with the ReportDetail payload to embed into a
// subsequent create/advance call.
func (h *TraceHandler) BuildReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, _, err := c.Request.FormFile("document")
	if err != nil {
		respondError(c, http.StatusBadRequest, "BAD_REQUEST", fmt.Errorf("document upload required: %w", err))
		return
	}
	defer file.Close()

	detail, err := h.reports.Build(c.PostForm("reportType"), c.PostForm("summary"), file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "HASH_FAILED", err)
		return
	}
	if source := c.PostForm("verificationSource"); source != "" {
		h.reports.MarkVerified(detail, source)
	}
	c.JSON(http.StatusOK, detail)
}

// cachedEvaluate serves a read through the cache, falling back to the ledger
// on a miss and populating the cache on success.
func (h *TraceHandler) cachedEvaluate(c *gin.Context, cacheKey, fn string, args ...string) {
	ctx := c.Request.Context()
	if h.cache != nil {
		if data, ok := h.cache.Get(ctx, cacheKey); ok {
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}
	data, err := h.ledger.Evaluate(ctx, fn, args...)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Set(ctx, cacheKey, data)
	}
	c.Data(http.StatusOK, "application/json", data)
}

// invalidateBatch drops every cached view of one batch after a mutation.
func (h *TraceHandler) invalidateBatch(c *gin.Context, batchID string) {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(c.Request.Context(),
		batchCacheKey(batchID), historyCacheKey(batchID), statusCacheKey(batchID))
}
