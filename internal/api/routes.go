package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Upload lifecycle: image in, description, code, preview, publish ---
	uploads := router.Group("/api/uploads")
	{
		uploads.POST("", h.UploadImage)
		uploads.GET("", h.ListUploads)
		uploads.POST("/generate-all", h.GenerateAll)
		uploads.POST("/:id/describe", h.DescribeImage)
		uploads.POST("/:id/generate", h.GenerateCode)
		uploads.POST("/:id/preview", h.BuildPreview)
		uploads.POST("/:id/publish", h.PublishCode)
		uploads.DELETE("/:id", h.DeleteUpload)
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
