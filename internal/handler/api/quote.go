package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"supplier-quotes/internal/domain/quote"
	reqdto "supplier-quotes/internal/handler/dto/request"
	resdto "supplier-quotes/internal/handler/dto/response"
	"supplier-quotes/internal/handler/httperr"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/usecase/commands"
	"supplier-quotes/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PDFRenderer turns a quote into a printable document.
type PDFRenderer interface {
	Generate(v *queries.QuoteView) ([]byte, error)
}

type QuoteHandler struct {
	cmds  commands.QuoteCommands
	q     queries.QuoteQueries
	pdf   PDFRenderer
	clock clock.Clock
}

func NewQuoteHandler(cmds commands.QuoteCommands, q queries.QuoteQueries, pdf PDFRenderer, clk clock.Clock) *QuoteHandler {
	return &QuoteHandler{cmds: cmds, q: q, pdf: pdf, clock: clk}
}

// @Summary List quotes
// @Description List quotes newest first, optionally for one deal and one stored status
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param deal_id query string false "Deal ID"
// @Param status query string false "Stored status" Enums(all, pending, accepted, rejected, expired)
// @Param limit query int false "Max items; omit for all"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.QuoteListResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	dealID, ok := optionalUUIDQuery(c, "deal_id")
	if !ok {
		return
	}

	filter := queries.ListFilter{DealID: dealID}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != "all" {
		status, err := quote.ParseStatus(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		filter.Status = &status
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			httperr.AbortWithError(c, http.StatusBadRequest, fmt.Errorf("limit %q", v), "Invalid limit", nil)
			return
		}
		filter.Limit = queries.ValidateLimit(limit)
	}
	if after := c.Query("after"); after != "" {
		filter.Cursor = &queries.Cursor{After: after}
	}

	views, next, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithClass(c, err, "Failed to list quotes")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteViews(views, next))
}

// @Summary Create quote
// @Description Record a supplier response against a deal. The quote starts pending.
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateQuoteRequest true "New quote"
// @Success 201 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req reqdto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	attrs, err := req.ToAttributes()
	if err != nil {
		httperr.AbortWithClass(c, err, "Invalid request")
		return
	}
	created, err := h.cmds.CreateQuote(c.Request.Context(), attrs)
	if err != nil {
		httperr.AbortWithClass(c, err, "Create failed")
		return
	}
	c.JSON(http.StatusCreated, h.respond(created))
}

// @Summary Quote metrics
// @Description Counts per status with total and average value
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param deal_id query string false "Deal ID"
// @Success 200 {object} resdto.MetricsResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /quotes/metrics [get]
func (h *QuoteHandler) Metrics(c *gin.Context) {
	dealID, ok := optionalUUIDQuery(c, "deal_id")
	if !ok {
		return
	}
	view, err := h.q.Metrics(c.Request.Context(), dealID)
	if err != nil {
		httperr.AbortWithClass(c, err, "Failed to compute metrics")
		return
	}
	c.JSON(http.StatusOK, resdto.FromMetricsView(view))
}

// @Summary Refresh quotes
// @Description Reload the working set from the backing store
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RefreshResponse
// @Failure 503 {object} httperr.Response
// @Router /quotes/refresh [post]
func (h *QuoteHandler) Refresh(c *gin.Context) {
	n, err := h.cmds.RefreshQuotes(c.Request.Context())
	if err != nil {
		httperr.AbortWithClass(c, err, "Refresh failed")
		return
	}
	c.JSON(http.StatusOK, resdto.RefreshResponse{Count: n})
}

// @Summary Get quote
// @Description Get a quote by ID
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithClass(c, err, "Failed to load quote")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Update quote
// @Description Edit amounts, dates, notes or line items. Status changes go through accept and reject.
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.UpdateQuoteRequest true "Fields to change"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id} [patch]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	p, err := req.ToPatch()
	if err != nil {
		httperr.AbortWithClass(c, err, "Invalid request")
		return
	}
	updated, err := h.cmds.UpdateQuote(c.Request.Context(), id, p)
	if err != nil {
		httperr.AbortWithClass(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, h.respond(updated))
}

// @Summary Accept quote
// @Description Accept a pending quote that is still within its validity date
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /quotes/{id}/accept [post]
func (h *QuoteHandler) Accept(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	updated, err := h.cmds.Accept(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithClass(c, err, "Accept failed")
		return
	}
	c.JSON(http.StatusOK, h.respond(updated))
}

// @Summary Reject quote
// @Description Reject a pending quote. The reason replaces the notes; no reason clears them.
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.RejectQuoteRequest false "Optional reason"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id}/reject [post]
func (h *QuoteHandler) Reject(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req reqdto.RejectQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	updated, err := h.cmds.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		httperr.AbortWithClass(c, err, "Reject failed")
		return
	}
	c.JSON(http.StatusOK, h.respond(updated))
}

// @Summary Export quote as PDF
// @Tags quotes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {file} file
// @Failure 404 {object} httperr.Response
// @Router /quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithClass(c, err, "Failed to load quote")
		return
	}
	doc, err := h.pdf.Generate(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "PDF generation failed", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, view.Number))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// @Summary Compare deal quotes
// @Description Rank the quotes of one deal by total, cheapest first
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} resdto.ComparisonResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /deals/{id}/comparison [get]
func (h *QuoteHandler) CompareDeal(c *gin.Context) {
	dealID, ok := pathUUID(c)
	if !ok {
		return
	}
	view, err := h.q.CompareDeal(c.Request.Context(), dealID)
	if err != nil {
		httperr.AbortWithClass(c, err, "Comparison failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromComparisonView(view))
}

func (h *QuoteHandler) respond(q *quote.Quote) *resdto.QuoteResponse {
	return resdto.FromQuoteView(queries.ToQuoteView(q, h.clock.Now()))
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+key, nil)
		return nil, false
	}
	return &id, true
}
