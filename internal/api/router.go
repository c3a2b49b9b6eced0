package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/in-nis/academy-grid/docs"
	"github.com/in-nis/academy-grid/internal/auth"
	"github.com/in-nis/academy-grid/internal/config"
	"github.com/in-nis/academy-grid/internal/grid"
)

// @title           Academy Grid API
// @version         1.0
// @description     Weekly class, temporary and pickup schedule grids.
// @host            localhost:8000
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, svc *grid.Service, ping func() error) *gin.Engine {
	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := ping(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	h := &GridHandler{Service: svc}
	grids := v1.Group("/academies/:academy/:table")
	grids.Use(auth.AuthMiddleware(cfg))
	{
		grids.GET("/times", h.ListTimes)
		grids.POST("/times", h.RegisterTime)
		grids.DELETE("/times/:time", h.RemoveTime)
		grids.GET("/cells", h.ListCells)
		grids.PUT("/cells", h.UpsertCell)
		grids.GET("/grid", h.GetGrid)
		grids.GET("/grid/export", h.ExportGrid)
		grids.POST("/grid/import", h.ImportGrid)
	}

	return r
}
