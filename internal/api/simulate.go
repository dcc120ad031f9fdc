package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/kpi"
)

// SimulateDelivery 配送补贴净影响测算
// POST /api/simulate/delivery
func (h *Handler) SimulateDelivery(c *gin.Context) {
	var input kpi.SimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulation input"})
		return
	}

	c.JSON(http.StatusOK, kpi.SimulateDeliverySubsidy(input))
}
