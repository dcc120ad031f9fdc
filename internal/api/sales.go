package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/calculator"
	"babajina/internal/kpi"
	"babajina/internal/model"
)

// MonthlySalesResponse 月度销售与预测响应
type MonthlySalesResponse struct {
	Actual   []model.MonthlyPoint `json:"actual"`
	Forecast []model.MonthlyPoint `json:"forecast"`
}

// GetMonthlySales 月度收入序列 + 季节均值预测
// GET /api/sales/monthly?categories=Toys,Christmas&cutoffYear=2024&forecastYear=2025
func (h *Handler) GetMonthlySales(c *gin.Context) {
	snapshot := h.snapshot()
	categories := queryCategories(c)
	cutoffYear := queryYear(c, "cutoffYear", h.business.ReferenceCutoffYear)
	forecastYear := queryYear(c, "forecastYear", h.business.ForecastYear)

	actual, forecast := calculator.MonthlyRevenueWithForecast(snapshot.Sales, categories, cutoffYear, forecastYear)

	c.JSON(http.StatusOK, MonthlySalesResponse{
		Actual:   actual,
		Forecast: forecast,
	})
}

// GetSalesByCategory 品类收入汇总
// GET /api/sales/categories?categories=Toys
func (h *Handler) GetSalesByCategory(c *gin.Context) {
	snapshot := h.snapshot()
	totals := calculator.RevenueByCategory(snapshot.Sales, queryCategories(c))

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetSummary 仪表盘摘要卡片
// GET /api/summary?categories=Toys,Christmas
func (h *Handler) GetSummary(c *gin.Context) {
	snapshot := h.snapshot()
	cards := kpi.BuildSummary(snapshot, queryCategories(c), h.business.ReferenceCutoffYear, h.business.ForecastYear)

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
