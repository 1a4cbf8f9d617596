package routes

import (
	"fieldops/internal/adapter/http/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth    = "/auth"
	PathJobs    = "/jobs"
	PathUploads = "/uploads"
	PathTeams   = "/teams"
	PathPing    = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addAuthRoutes(rg *gin.RouterGroup, teamHandler *handlers.TeamHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/team", teamHandler.ExchangeCredential)
	}
}

func addJobRoutes(rg *gin.RouterGroup, jobHandler *handlers.WorkOrderHandler, receiptHandler *handlers.PaymentReceiptHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.PATCH("/:job_id", jobHandler.MutateJob)
		jobs.POST("/:job_id/payment-receipt", receiptHandler.ReceivePayment)
		jobs.GET("/:job_id/transactions", receiptHandler.ListTransactions)
	}
}

func addUploadRoutes(rg *gin.RouterGroup, uploadHandler *handlers.UploadHandler) {
	rg.POST(PathUploads, uploadHandler.UploadReceipt)
}

func addTeamRoutes(rg *gin.RouterGroup, teamHandler *handlers.TeamHandler, streamHandler *handlers.JobStreamHandler) {
	teams := rg.Group(PathTeams)
	{
		teams.PUT("/:team_id/location", teamHandler.ReportLocation)
		teams.GET("/:team_id/jobs/stream", streamHandler.StreamJobs)
	}
}
