package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/whistle-guardian/api-go/controllers"
)

func SetupBountyRoutes(protected *gin.RouterGroup, bountyController *controllers.BountyController) {
	reports := protected.Group("/reports")
	{
		reports.POST("/:id/bounty/accept", bountyController.AcceptBounty)
		reports.GET("/:id/bounty/acceptances", bountyController.ListReportAcceptances)
	}

	bounty := protected.Group("/bounty")
	{
		bounty.PUT("/acceptances/:id/approve", bountyController.ApproveAcceptance)
		bounty.PUT("/acceptances/:id/reject", bountyController.RejectAcceptance)
		bounty.GET("/acceptances/mine", bountyController.ListMyAcceptances)
	}
}
