package http

import "github.com/gin-gonic/gin"

// Register registers the observation log routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreateLog)
	rg.GET("", h.ListLogs)
	rg.GET("/:id", h.GetLog)
	rg.GET("/:id/image", h.GetImage)
	rg.DELETE("/:id", h.DeleteLog)
}
