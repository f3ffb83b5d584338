package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/whistle-guardian/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	files := protected.Group("/files")
	{
		// Multipart evidence upload, proxied through the API so images can
		// be sanitized server-side.
		files.POST("", uploadController.UploadEvidence)

		// Direct-to-bucket flow for large files.
		files.POST("/presign", uploadController.GetPresignedURL)
	}
}
