package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/cards/render", s.renderHandler)
		api.POST("/cards/search", s.searchHandler)
		api.GET("/cards/:id/image", s.cardImageHandler)
		api.GET("/cards/:id/art", s.cardArtHandler)
		api.POST("/deck/sheet", s.deckSheetHandler)
		api.GET("/qr", s.qrHandler)
	}
}
