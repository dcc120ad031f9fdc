package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"babajina/internal/config"
	"babajina/internal/loader"
)

// Handler API 处理器
type Handler struct {
	loader    *loader.Loader
	paths     loader.Paths
	business  config.BusinessConfig
	exportDir string
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(ld *loader.Loader, paths loader.Paths, business config.BusinessConfig, exportDir string) *Handler {
	return &Handler{
		loader:    ld,
		paths:     paths,
		business:  business,
		exportDir: exportDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.POST("/reload", h.Reload)

	// 摘要卡片
	router.GET("/summary", h.GetSummary)

	// 销售
	router.GET("/sales/monthly", h.GetMonthlySales)
	router.GET("/sales/categories", h.GetSalesByCategory)

	// 供应商
	router.GET("/suppliers/concentration", h.GetSupplierConcentration)
	router.GET("/suppliers/categories", h.GetSupplierCategoryYears)

	// 租赁
	router.GET("/rentals/utilization", h.GetRentalUtilization)

	// 客户分群
	router.GET("/rfm", h.GetRFM)
	router.GET("/rfm/segments", h.GetRFMSegments)

	// 模拟器
	router.POST("/simulate/delivery", h.SimulateDelivery)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// snapshot 取当前数据快照（缓存命中时不重读文件）
func (h *Handler) snapshot() *loader.Snapshot {
	return h.loader.LoadAll(h.paths)
}

// queryCategories 解析 categories=a,b 过滤参数
func queryCategories(c *gin.Context) []string {
	raw := c.Query("categories")
	if raw == "" {
		return nil
	}

	var categories []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}

// queryYears 解析 years=2023,2024 过滤参数（非数字项忽略）
func queryYears(c *gin.Context) []int {
	raw := c.Query("years")
	if raw == "" {
		return nil
	}

	var years []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if y, err := strconv.Atoi(part); err == nil {
			years = append(years, y)
		}
	}
	return years
}

// queryYear 整数查询参数，缺省取 fallback
func queryYear(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	if y, err := strconv.Atoi(raw); err == nil {
		return y
	}
	return fallback
}

// rfmAsOf 解析 RFM 口径日期：查询参数优先，其次配置，都缺时交给引擎取最近销售日
func (h *Handler) rfmAsOf(c *gin.Context) time.Time {
	for _, raw := range []string{c.Query("asOf"), h.business.RFMAsOf} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
