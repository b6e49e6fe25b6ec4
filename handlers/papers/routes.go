package papers

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to papers
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.PaperService, secret []byte) {
	h := &Handler{service: service}
	admin := middleware.AdminOnly(secret)

	papers := r.Group("/papers")
	{
		papers.GET("", h.ListPapers)
		papers.GET("/:id", h.GetPaper)

		papers.POST("", append(admin, h.CreatePaper)...)
		papers.PUT("/:id", append(admin, h.UpdatePaper)...)
		papers.DELETE("/:id", append(admin, h.DeletePaper)...)
	}
}
