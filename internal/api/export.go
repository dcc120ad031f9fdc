package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"babajina/internal/exporter"
	"babajina/internal/model"
)

// downloadTTL 导出下载令牌有效期
const downloadTTL = 10 * time.Minute

// ExportRequest 导出请求
type ExportRequest struct {
	// sales / suppliers / rentals / workbook（三表合一工作簿）
	Dataset string `json:"dataset" binding:"required"`
}

// Export 导出统一口径数据，返回一次性下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid export request"})
		return
	}

	snapshot := h.snapshot()

	var (
		path string
		kind model.DatasetKind
		err  error
	)
	switch req.Dataset {
	case "workbook":
		path, err = exporter.ExportWorkbook(snapshot, h.exportDir)
	case string(model.DatasetSales), string(model.DatasetSuppliers), string(model.DatasetRentals):
		kind = model.DatasetKind(req.Dataset)
		path, err = exporter.ExportCSV(snapshot, kind, h.exportDir)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown dataset: " + req.Dataset})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(path, kind, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filepath.Base(path),
	})
}

// DownloadExport 按令牌下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or not found"})
		return
	}

	c.FileAttachment(item.filePath, filepath.Base(item.filePath))
}
