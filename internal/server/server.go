package server

import (
	"embed"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"babajina/internal/api"
	"babajina/internal/config"
	"babajina/internal/loader"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	loader *loader.Loader
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, dataDir string) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ld := loader.New()
	paths := loader.Paths{
		Sales:     config.DatasetPath(dataDir, cfg.Data.SalesFile),
		Suppliers: config.DatasetPath(dataDir, cfg.Data.SuppliersFile),
		Rentals:   config.DatasetPath(dataDir, cfg.Data.RentalsFile),
	}
	exportDir := filepath.Join(dataDir, "exports")

	apiHandler := api.NewHandler(ld, paths, cfg.Business, exportDir)

	s := &Server{
		router: gin.Default(),
		loader: ld,
		api:    apiHandler,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用 embed 的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
