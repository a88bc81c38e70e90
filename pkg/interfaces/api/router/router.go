// Package router wires the HTTP handlers into a gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vsinha/transferplan/pkg/application/services/catalog"
	"github.com/vsinha/transferplan/pkg/application/services/optimization"
	"github.com/vsinha/transferplan/pkg/config"
	"github.com/vsinha/transferplan/pkg/infrastructure/events"
	"github.com/vsinha/transferplan/pkg/interfaces/api/handler"
	"github.com/vsinha/transferplan/pkg/interfaces/api/middleware"
)

// Dependencies are the services the routes are served from
type Dependencies struct {
	Catalog *catalog.CatalogService
	Engine  *optimization.TransferPlanService
	Events  events.Log
	// Ping checks the catalog database; nil for in-memory catalogs
	Ping handler.Pinger
}

// New returns a configured gin engine.
func New(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins())))
	r.Use(middleware.ErrorHandler())

	productsH := handler.NewProductsHandler(deps.Catalog)
	plantsH := handler.NewPlantsHandler(deps.Catalog)
	planH := handler.NewTransferPlanHandler(deps.Catalog, deps.Engine)

	r.GET("/", handler.Root(cfg.ProjectName, cfg.Version))

	v1 := r.Group(cfg.APIPrefix)
	{
		v1.GET("/health", handler.Health(deps.Ping))

		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.Get)
		v1.POST("/products", productsH.Create)
		v1.PUT("/products/:id", productsH.Update)
		v1.DELETE("/products/:id", productsH.Delete)

		v1.GET("/plants", plantsH.List)
		v1.GET("/plants/:id", plantsH.Get)
		v1.POST("/plants", plantsH.Create)
		v1.PUT("/plants/:id", plantsH.Update)
		v1.DELETE("/plants/:id", plantsH.Delete)

		plan := v1.Group("/transfer-plan")
		{
			plan.POST("/generate", planH.Generate)
			plan.POST("/export", planH.Export)
			plan.GET("/status", planH.Status)
			plan.POST("/load-example-data", planH.LoadExampleData)
		}

		if deps.Events != nil {
			v1.GET("/catalog/events", handler.NewEventsHandler(deps.Events).List)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
