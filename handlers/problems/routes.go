package problems

import (
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to problems
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.ProblemService) {
	h := &Handler{service: service}

	problems := r.Group("/problems")
	{
		problems.GET("", h.ListProblems)
		problems.GET("/:id", h.GetProblem)
	}
}
