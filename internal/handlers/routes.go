package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldops-backend/internal/config"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/session"
)

// Set is every handler the API serves.
type Set struct {
	Health    *HealthHandler
	Jobs      *JobsHandler
	OnSite    *OnSiteHandler
	Documents *DocumentsHandler
	Operators *OperatorsHandler
	Assets    *AssetsHandler
	Admin     *AdminHandler
}

// Register mounts the health check and the authenticated /api/v1 routes.
func Register(router *gin.Engine, cfg *config.Config, h Set) {
	// Health check (no auth)
	router.GET("/health", h.Health.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	adminOnly := middleware.RequireRole(session.RoleAdmin)

	// Jobs
	api.POST("/jobs", adminOnly, h.Jobs.CreateJob)
	api.GET("/jobs", h.Jobs.ListJobs)
	api.GET("/jobs/completed", h.Jobs.CompletedJobs)
	api.GET("/jobs/:job_id", h.Jobs.GetJob)
	api.PATCH("/jobs/:job_id/assign", adminOnly, h.Jobs.AssignJob)
	api.POST("/jobs/:job_id/arrive", h.Jobs.Arrive)
	api.GET("/jobs/:job_id/workflow", h.Jobs.Workflow)
	api.POST("/jobs/:job_id/complete", h.Jobs.Complete)
	api.GET("/jobs/:job_id/costs", adminOnly, h.Jobs.Costs)

	// Workflow steps
	api.GET("/jobs/:job_id/silica-plan", h.OnSite.GetSilicaPlan)
	api.POST("/jobs/:job_id/silica-plan", h.OnSite.SubmitSilicaPlan)
	api.GET("/jobs/:job_id/work-performed", h.OnSite.ListWork)
	api.POST("/jobs/:job_id/work-performed", h.OnSite.AddWork)
	api.GET("/jobs/:job_id/draft", h.OnSite.GetDraft)
	api.PUT("/jobs/:job_id/draft", h.OnSite.SaveDraft)
	api.DELETE("/jobs/:job_id/draft", h.OnSite.ClearDraft)
	api.GET("/jobs/:job_id/standby", h.OnSite.ListStandby)
	api.POST("/jobs/:job_id/standby/start", h.OnSite.StartStandby)
	api.POST("/jobs/:job_id/standby/:log_id/stop", h.OnSite.StopStandby)
	api.POST("/jobs/:job_id/end-day", h.OnSite.EndDay)

	// Documents
	api.GET("/jobs/:job_id/documents/:kind", h.Documents.DownloadDocument)
	api.POST("/jobs/:job_id/documents/:kind", h.Documents.StoreDocument)

	// Operators
	api.GET("/operators", h.Operators.ListOperators)
	api.GET("/operators/:operator_id", h.Operators.GetOperator)
	api.POST("/operators", adminOnly, h.Operators.CreateOperator)
	api.PATCH("/operators/:operator_id", adminOnly, h.Operators.UpdateOperator)
	api.POST("/operators/:operator_id/certifications", adminOnly, h.Operators.AddCertification)

	// Assets
	api.GET("/assets", h.Assets.ListAssets)
	api.POST("/assets", h.Assets.CreateAsset)
	api.GET("/assets/analytics", adminOnly, h.Assets.Analytics)
	api.POST("/assets/:asset_id/usage", h.Assets.AddUsage)
	api.POST("/assets/:asset_id/retire", h.Assets.RetireAsset)

	// Admin
	admin := api.Group("/admin", adminOnly)
	admin.GET("/reconcile", h.Admin.Reconcile)
	admin.POST("/reconcile/cleanup", h.Admin.Cleanup)
	admin.POST("/reconcile/repair", h.Admin.Repair)
	admin.GET("/reports/completed.xlsx", h.Admin.CompletedReport)
}
