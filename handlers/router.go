package handlers

import "github.com/gin-gonic/gin"

// Register wires the API surface onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.GET("/theses", h.ListTheses)
		api.POST("/theses", h.CreateThesis)
		api.GET("/theses/:id", h.GetThesis)
		api.PUT("/theses/:id", h.UpdateThesis)
		api.PATCH("/theses/:id/toggle", h.ToggleThesis)
		api.DELETE("/theses/:id", h.DeleteThesis)
		api.GET("/theses/:id/targets", h.ListTargets)

		api.POST("/targets", h.CreateTarget)
		api.POST("/targets/bulk", h.BulkCreateTargets)
		api.PATCH("/targets/:id", h.PatchTarget)
		api.DELETE("/targets/:id", h.DeleteTarget)
		api.GET("/targets/:id/signals", h.ListSignals)
		api.GET("/targets/:id/deep-dive", h.GetDeepDive)

		api.POST("/signals", h.AppendSignal)
		api.POST("/deep-dives", h.UpsertDeepDive)

		api.GET("/stats", h.GetStats)

		research := api.Group("/research")
		{
			research.POST("/suggest-theses", h.SuggestTheses)
			research.POST("/theses/:id/calibrate", h.CalibrateThesis)
			research.POST("/theses/:id/execute-search", h.ExecuteSearch)
			research.POST("/theses/:id/refresh-signals", h.RefreshSignals)
			research.POST("/theses/:id/market-map", h.GenerateMarketMap)
			research.POST("/targets/:id/deep-dive", h.GenerateDeepDive)
		}
	}
}
