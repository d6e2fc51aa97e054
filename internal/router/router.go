package router

import (
	"time"

	"leadroll/internal/database"
	"leadroll/internal/handlers"
	"leadroll/internal/middleware"
	"leadroll/internal/services"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, services and routes. The llm client may be
// nil, in which case ranking and CSV import report an upstream failure.
func SetupRouter(llm services.JSONGenerator) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, llm)
	return router
}

func registerRoutes(router *gin.Engine, llm services.JSONGenerator) {

	auth := middleware.NewAuthMiddleware()

	api := router.Group("/api/v1")
	{
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		authHandler := handlers.NewAuthHandler(services.NewUserService())
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		leadHandler := handlers.NewLeadHandler(services.NewLeadService())
		leads := api.Group("/leads", auth.RequireLogin())
		{
			leads.GET("", leadHandler.List)
			leads.POST("", leadHandler.Create)
			leads.PUT("", leadHandler.Update)
			leads.DELETE("", leadHandler.Delete)
		}

		rankHandler := handlers.NewRankHandler(services.NewLeadRankerService(llm))
		api.POST("/rank", auth.RequireLogin(), rankHandler.Rank)

		mapper := services.NewColumnMapperService(llm, database.GetRedisCache())
		rentRollHandler := handlers.NewRentRollHandler(services.NewRentRollService(mapper))
		rentRoll := api.Group("/rent_roll", auth.RequireLogin())
		{
			rentRoll.GET("", rentRollHandler.List)
			rentRoll.POST("", rentRollHandler.Create)
			rentRoll.PUT("", rentRollHandler.Update)
			rentRoll.DELETE("", rentRollHandler.Delete)
			rentRoll.POST("/import", rentRollHandler.ImportCSV)
			rentRoll.GET("/occupancy", rentRollHandler.Occupancy)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "leadroll",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
