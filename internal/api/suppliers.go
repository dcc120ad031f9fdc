package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/calculator"
)

// GetSupplierConcentration 供应商集中度与排名
// GET /api/suppliers/concentration?years=2023,2024
func (h *Handler) GetSupplierConcentration(c *gin.Context) {
	snapshot := h.snapshot()
	concentration := calculator.Concentration(snapshot.Suppliers, queryYears(c))

	c.JSON(http.StatusOK, concentration)
}

// GetSupplierCategoryYears 品类×年份订单额汇总
// GET /api/suppliers/categories
func (h *Handler) GetSupplierCategoryYears(c *gin.Context) {
	snapshot := h.snapshot()
	totals := calculator.OrderAmountByCategoryYear(snapshot.Suppliers)

	c.JSON(http.StatusOK, gin.H{"totals": totals})
}
