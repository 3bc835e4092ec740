package gateway

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LewyHua/RiceTrace-sub000/config"
)

// NewRouter wires the trace handler into the HTTP surface. Reads are open to
// every caller; write authorization happens on-ledger, where the contract
// resolves the submitting organization's role.
func NewRouter(cfg *config.GatewayConfig, handler *TraceHandler) *gin.Engine {
	if cfg.Mode == "prod" || cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api")
	{
		api.POST("/seed", handler.Seed)
		api.POST("/batches", handler.CreateBatch)
		api.POST("/batches/:id/events", handler.AdvanceBatch)
		api.POST("/products", handler.CreateProduct)
		api.POST("/reports", handler.BuildReport)

		api.GET("/batches", handler.ListBatches)
		api.GET("/batches/:id", handler.GetBatch)
		api.HEAD("/batches/:id", handler.HeadBatch)
		api.GET("/batches/:id/history", handler.GetBatchHistory)
		api.GET("/batches/:id/status", handler.GetBatchStatus)
		api.GET("/products/:id", handler.GetProduct)
	}

	return router
}
