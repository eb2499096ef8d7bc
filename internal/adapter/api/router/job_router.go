package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
)

func SetupJobRouter(e *echo.Echo, jobHandler *handler.JobHandler, authMiddleware *middleware.AuthMiddleware) {
	jobs := e.Group("/v1/jobs")
	jobs.GET("", jobHandler.ListJobs)
	jobs.GET("/:id", jobHandler.GetJob)

	protected := e.Group("/v1/jobs")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("", jobHandler.CreateJob)
	protected.POST("/:id/apply", jobHandler.Apply)
	protected.GET("/applications/mine", jobHandler.ListMyApplications)
	protected.GET("/applications/received", jobHandler.ListReceivedApplications)
	protected.PUT("/applications/:id/status", jobHandler.UpdateApplicationStatus)
}
