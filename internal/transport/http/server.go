package http

import (
	"github.com/gin-gonic/gin"

	"kairosai/internal/bootstrap"
	"kairosai/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	projectHandler := handler.NewProjectHandler(app.Projects)
	documentHandler := handler.NewDocumentHandler(app.Ingest)
	chatHandler := handler.NewChatHandler(app.Chat, app.Config.AI.MaxChatHistory)
	generationHandler := handler.NewGenerationHandler(app.Generators, app.Factory, app.Export)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.GET("/:id/stats", projectHandler.Stats)

			projects.POST("/:id/documents", documentHandler.Upload)
			projects.GET("/:id/documents", documentHandler.List)

			projects.POST("/:id/chat", chatHandler.Chat)
			projects.GET("/:id/chat/history", chatHandler.History)
			projects.DELETE("/:id/chat/history", chatHandler.ClearHistory)
			projects.POST("/:id/summary", chatHandler.Summary)

			projects.POST("/:id/generate/:type", generationHandler.Generate)
			projects.POST("/:id/factory", generationHandler.Factory)
			projects.GET("/:id/generated", generationHandler.ListGenerated)
			projects.GET("/:id/generated/versions", generationHandler.ListVersions)
		}

		documents := v1.Group("/documents")
		{
			documents.GET("/:id/status", documentHandler.Status)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		v1.GET("/chat/messages/:id", chatHandler.Message)

		generated := v1.Group("/generated")
		{
			generated.GET("/:id", generationHandler.GetGenerated)
			generated.PUT("/:id", generationHandler.UpdateGenerated)
			generated.DELETE("/:id", generationHandler.DeleteGenerated)
			generated.GET("/:id/export", generationHandler.Export)
		}
	}

	return router
}
