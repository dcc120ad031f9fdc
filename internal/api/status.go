package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/loader"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	LoadedAt  string                 `json:"loadedAt"`
	Datasets  []loader.DatasetStatus `json:"datasets"`
	RowCounts map[string]int         `json:"rowCounts"`
}

// GetStatus 数据集加载状态与行数
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snapshot := h.snapshot()

	c.JSON(http.StatusOK, StatusResponse{
		LoadedAt: snapshot.LoadedAt.Format("2006-01-02 15:04:05"),
		Datasets: snapshot.Statuses,
		RowCounts: map[string]int{
			"sales":     len(snapshot.Sales),
			"suppliers": len(snapshot.Suppliers),
			"rentals":   len(snapshot.Rentals),
		},
	})
}

// Reload 清空缓存并重新加载
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	h.loader.Invalidate()
	snapshot := h.snapshot()

	c.JSON(http.StatusOK, gin.H{
		"reloaded": true,
		"datasets": snapshot.Statuses,
	})
}
