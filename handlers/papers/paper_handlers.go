package papers

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

// ListPapers lists papers
// @Summary List papers
// @Description List papers ordered by title. q matches title, journal or authors (case-sensitive substring)
// @Tags Papers
// @Produce json
// @Param q query string false "Keyword"
// @Param algorithm_id query int false "Linked algorithm ID"
// @Param tool_id query int false "Linked tool ID"
// @Success 200 {array} views.PaperView
// @Failure 400 {object} map[string]string
// @Router /papers [get]
func (h *Handler) ListPapers(c *gin.Context) {
	filter := services.PaperFilter{Keyword: utils.Keyword(c)}

	algorithmID, present, err := utils.QueryID(c, "algorithm_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidAlgorithmID)
		return
	}
	if present {
		filter.AlgorithmID = &algorithmID
	}
	toolID, present, err := utils.QueryID(c, "tool_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidToolID)
		return
	}
	if present {
		filter.ToolID = &toolID
	}

	papers, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Papers(papers))
}

// GetPaper returns one paper
// @Summary Get a paper
// @Tags Papers
// @Produce json
// @Param id path int true "Paper ID"
// @Success 200 {object} views.PaperView
// @Failure 404 {object} map[string]string
// @Router /papers/{id} [get]
func (h *Handler) GetPaper(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrPaperNotFound)
		return
	}

	paper, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Paper(paper))
}

// CreatePaper creates a paper
// @Summary Create a paper
// @Description Create a paper and link it to algorithms and tools, admin only
// @Tags Papers
// @Accept json
// @Produce json
// @Param paper body CreatePaperRequest true "Paper"
// @Success 201 {object} views.PaperView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /papers [post]
// @Security Bearer
func (h *Handler) CreatePaper(c *gin.Context) {
	var req CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	paper, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, views.Paper(paper))
}

// UpdatePaper applies a partial update
// @Summary Update a paper
// @Tags Papers
// @Accept json
// @Produce json
// @Param id path int true "Paper ID"
// @Param paper body UpdatePaperRequest true "Fields to change"
// @Success 200 {object} views.PaperView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /papers/{id} [put]
// @Security Bearer
func (h *Handler) UpdatePaper(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrPaperNotFound)
		return
	}

	var req UpdatePaperRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.BindingError(c, err)
		return
	}

	paper, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Paper(paper))
}

// DeletePaper deletes a paper and its links
// @Summary Delete a paper
// @Tags Papers
// @Produce json
// @Param id path int true "Paper ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /papers/{id} [delete]
// @Security Bearer
func (h *Handler) DeletePaper(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrPaperNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgPaperDeleted})
}
