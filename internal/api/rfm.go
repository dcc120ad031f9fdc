package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babajina/internal/segment"
)

// GetRFM 客户 RFM 明细
// GET /api/rfm?asOf=2025-01-31
// 销售数据没有客户号时返回空列表（忠诚度功能降级，不报错）
func (h *Handler) GetRFM(c *gin.Context) {
	snapshot := h.snapshot()
	rows := segment.Compute(snapshot.Sales, h.rfmAsOf(c))

	c.JSON(http.StatusOK, gin.H{"customers": rows})
}

// GetRFMSegments 分群人数汇总
// GET /api/rfm/segments?asOf=2025-01-31
func (h *Handler) GetRFMSegments(c *gin.Context) {
	snapshot := h.snapshot()
	rows := segment.Compute(snapshot.Sales, h.rfmAsOf(c))

	c.JSON(http.StatusOK, gin.H{"segments": segment.Counts(rows)})
}
