package algorithms

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

// ListAlgorithms lists algorithms, optionally filtered
// @Summary List algorithms
// @Description List algorithms ordered by name. q matches name or description (case-sensitive substring)
// @Tags Algorithms
// @Produce json
// @Param q query string false "Keyword"
// @Param problem_id query int false "Problem ID"
// @Success 200 {array} views.AlgorithmView
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /algorithms [get]
func (h *Handler) ListAlgorithms(c *gin.Context) {
	filter := services.AlgorithmFilter{Keyword: utils.Keyword(c)}

	problemID, present, err := utils.QueryID(c, "problem_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidProblemID)
		return
	}
	if present {
		filter.ProblemID = &problemID
	}

	algorithms, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Algorithms(algorithms))
}

// GetAlgorithm returns one algorithm
// @Summary Get an algorithm
// @Description Get an algorithm with its problem, tools and papers
// @Tags Algorithms
// @Produce json
// @Param id path int true "Algorithm ID"
// @Success 200 {object} views.AlgorithmView
// @Failure 404 {object} map[string]string
// @Router /algorithms/{id} [get]
func (h *Handler) GetAlgorithm(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrAlgorithmNotFound)
		return
	}

	algorithm, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Algorithm(algorithm))
}

// CreateAlgorithm creates an algorithm
// @Summary Create an algorithm
// @Description Create an algorithm for an existing problem, admin only
// @Tags Algorithms
// @Accept json
// @Produce json
// @Param algorithm body CreateAlgorithmRequest true "Algorithm"
// @Success 201 {object} views.AlgorithmView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /algorithms [post]
// @Security Bearer
func (h *Handler) CreateAlgorithm(c *gin.Context) {
	var req CreateAlgorithmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	algorithm, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, views.Algorithm(algorithm))
}

// UpdateAlgorithm applies a partial update
// @Summary Update an algorithm
// @Description Only the fields present in the body are changed, admin only
// @Tags Algorithms
// @Accept json
// @Produce json
// @Param id path int true "Algorithm ID"
// @Param algorithm body UpdateAlgorithmRequest true "Fields to change"
// @Success 200 {object} views.AlgorithmView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /algorithms/{id} [put]
// @Security Bearer
func (h *Handler) UpdateAlgorithm(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrAlgorithmNotFound)
		return
	}

	var req UpdateAlgorithmRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.BindingError(c, err)
		return
	}

	algorithm, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Algorithm(algorithm))
}

// DeleteAlgorithm deletes an algorithm
// @Summary Delete an algorithm
// @Description Delete an algorithm and its paper links. Fails while tools still implement it. Admin only
// @Tags Algorithms
// @Produce json
// @Param id path int true "Algorithm ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /algorithms/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteAlgorithm(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrAlgorithmNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgAlgorithmDeleted})
}
