package problems

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

const ErrProblemNotFound = "problem not found"

type Handler struct {
	service *services.ProblemService
}

// ListProblems lists every problem with its algorithms
// @Summary List problems
// @Tags Problems
// @Produce json
// @Success 200 {array} views.ProblemView
// @Router /problems [get]
func (h *Handler) ListProblems(c *gin.Context) {
	problems, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Problems(problems))
}

// GetProblem returns one problem
// @Summary Get a problem
// @Tags Problems
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} views.ProblemView
// @Failure 404 {object} map[string]string
// @Router /problems/{id} [get]
func (h *Handler) GetProblem(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrProblemNotFound)
		return
	}

	problem, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Problem(problem))
}
