package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"minion-profit/internal/analysis"
	"minion-profit/internal/api/models"
	"minion-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// ResultsHandler serves a loaded result set
type ResultsHandler struct {
	results []model.Result
}

// NewResultsHandler creates a handler over results. The slice is not modified.
func NewResultsHandler(results []model.Result) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// List handles GET /api/v1/results
func (h *ResultsHandler) List(c *gin.Context) {
	var req models.ResultsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}

	q, err := toQuery(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_QUERY", err.Error()))
		return
	}

	ranked, total, err := analysis.Rank(h.rows(), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_QUERY", err.Error()))
		return
	}

	limit := q.Limit
	if limit == 0 {
		limit = analysis.DefaultPageSize
	}
	c.JSON(http.StatusOK, models.ResultsResponse{
		Total:   total,
		Limit:   limit,
		Offset:  q.Offset,
		Results: ranked,
	})
}

// Summary handles GET /api/v1/results/summary
func (h *ResultsHandler) Summary(c *gin.Context) {
	key, err := analysis.ParseSortKey(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_QUERY", err.Error()))
		return
	}
	rows := analysis.Filter(h.rows(), analysis.Query{Minion: c.Query("minion")})
	c.JSON(http.StatusOK, models.SummaryResponse{Summaries: analysis.Summarize(rows, key)})
}

// rows copies the slice header so sorting never reorders the shared results.
func (h *ResultsHandler) rows() []model.Result {
	return append([]model.Result(nil), h.results...)
}

func toQuery(req models.ResultsQuery) (analysis.Query, error) {
	key, err := analysis.ParseSortKey(req.Sort)
	if err != nil {
		return analysis.Query{}, err
	}
	q := analysis.Query{
		Minion:       req.Minion,
		MaxSetupCost: req.MaxCost,
		SortBy:       key,
		Ascending:    req.Order == "asc",
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if req.Seconds != "" {
		for _, s := range strings.Split(req.Seconds, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return analysis.Query{}, err
			}
			q.Horizons = append(q.Horizons, n)
		}
	}
	return q, nil
}
