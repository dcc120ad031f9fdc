package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/calculator"
)

// GetRentalUtilization 人偶月度利用率
// GET /api/rentals/utilization
// 无预订的 (人偶, 月份) 不产生行，前端按 0% 渲染
func (h *Handler) GetRentalUtilization(c *gin.Context) {
	snapshot := h.snapshot()
	cells := calculator.RentalUtilization(snapshot.Rentals)

	c.JSON(http.StatusOK, gin.H{"utilization": cells})
}
