package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/whistle-guardian/api-go/controllers"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController, supportController *controllers.SupportController) {
	reports := protected.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.POST("/:id/support", supportController.ToggleSupport)
		reports.POST("/:id/updates", reportController.AddUpdate)
	}
}
