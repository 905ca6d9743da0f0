package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/shoestore/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/daily-trend", h.DailyTrend)
		reports.GET("/top-products", h.TopProducts)
	}
}

func (h *ReportHandler) bindFilter(c *gin.Context) (reportapp.ReportFilter, bool) {
	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Tham số báo cáo không hợp lệ")
		return filter, false
	}
	return filter, true
}

// Summary returns revenue, cost and profit for the period
func (h *ReportHandler) Summary(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DailyTrend returns per-day sales figures for the period
func (h *ReportHandler) DailyTrend(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	points, err := h.reportService.DailyTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// TopProducts returns the best selling products for the period
func (h *ReportHandler) TopProducts(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rankings, err := h.reportService.TopProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rankings)
}
