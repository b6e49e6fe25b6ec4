package stats

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *services.StatsService
}

// GetStats returns catalog counts
// @Summary Catalog statistics
// @Description Algorithm, tool and paper counts plus the number of algorithms per problem, including problems with none
// @Tags Stats
// @Produce json
// @Success 200 {object} services.Stats
// @Router /stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
