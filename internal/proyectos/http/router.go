package http

import "github.com/gin-gonic/gin"

// Register mounts the proyectos routes on the given group.
func Register(rg *gin.RouterGroup, h *Handler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/presentar", h.Submit)
	rg.POST("/:id/formato-a/evaluacion", h.ReviewFormatoA)
	rg.POST("/:id/formato-a/reenvio", h.Resubmit)
	rg.POST("/:id/anteproyecto", h.UploadAnteproyecto)
	rg.POST("/:id/anteproyecto/evaluadores", h.AssignEvaluators)
	rg.POST("/:id/anteproyecto/evaluacion", h.ReviewAnteproyecto)
}
