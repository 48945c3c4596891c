package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/employees", s.employees)
		api.POST("/poster", s.generatePoster)
		api.POST("/layout/validate", s.validateLayout)
		api.GET("/config", s.getConfig)
		api.PUT("/config", s.putConfig)
	}
}
