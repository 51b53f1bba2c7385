package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Данные для карты
	api.GET("/crimes", h.getCrimes)
	api.GET("/heatmap", h.getHeatmap)
	api.GET("/categories", h.listCategories)
	api.GET("/stats", h.getStats)

	// Работа с отчетами
	api.POST("/extract-report", h.extractReport)
	api.POST("/predict-category", h.predictCategory)

	// Маршрут Health-check
	api.GET("/health", h.healthCheck)
}
