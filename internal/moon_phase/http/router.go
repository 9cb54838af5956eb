package http

import "github.com/gin-gonic/gin"

// Register registers the moon routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.GetReport)
	rg.GET("/calendar", h.GetCalendar)
	rg.GET("/outline", h.GetOutline)
	rg.GET("/render.svg", h.RenderSVG)
}
