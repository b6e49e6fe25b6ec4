package export

import (
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the spreadsheet export routes
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.ExportService) {
	h := &Handler{service: service}

	export := r.Group("/export")
	{
		export.GET("/catalog.xlsx", h.ExportCatalog)
	}
}
