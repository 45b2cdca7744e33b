package routes

import (
	"time"

	"gymdesk/handlers"
	"gymdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterScheduleRoutes registers the weekly schedule endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("", hb.GetScheduleHandler)
		api.POST("/reload", hb.ReloadScheduleHandler)

		slots := api.Group("/slots/:id")
		slots.PATCH("", hb.EditSlotHandler)
		slots.DELETE("", hb.DeleteSlotHandler)
		slots.GET("/clients", hb.GetSlotClientsHandler)
		slots.POST("/clients", hb.AssignClientsHandler)
		slots.DELETE("/clients/:clientId", hb.UnassignClientHandler)
	}
}

// RegisterClientRoutes registers the client search and cache endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.GET("/assignable", hb.SearchAssignableHandler)
		api.DELETE("/cache", hb.ClearClientCacheHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterClientRoutes(r, hb)
}
