package tools

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

// ListTools lists tools
// @Summary List tools
// @Description List tools ordered by name. q matches name or description (case-sensitive substring)
// @Tags Tools
// @Produce json
// @Param q query string false "Keyword"
// @Param algorithm_id query int false "Algorithm ID"
// @Param lab_id query int false "Lab ID"
// @Success 200 {array} views.ToolView
// @Failure 400 {object} map[string]string
// @Router /tools [get]
func (h *Handler) ListTools(c *gin.Context) {
	filter := services.ToolFilter{Keyword: utils.Keyword(c)}

	algorithmID, present, err := utils.QueryID(c, "algorithm_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidAlgorithmID)
		return
	}
	if present {
		filter.AlgorithmID = &algorithmID
	}
	labID, present, err := utils.QueryID(c, "lab_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidLabID)
		return
	}
	if present {
		filter.LabID = &labID
	}

	tools, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Tools(tools))
}

// GetTool returns one tool
// @Summary Get a tool
// @Tags Tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} views.ToolView
// @Failure 404 {object} map[string]string
// @Router /tools/{id} [get]
func (h *Handler) GetTool(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrToolNotFound)
		return
	}

	tool, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Tool(tool))
}

// CreateTool creates a tool
// @Summary Create a tool
// @Description Create a tool implementing an existing algorithm, admin only
// @Tags Tools
// @Accept json
// @Produce json
// @Param tool body CreateToolRequest true "Tool"
// @Success 201 {object} views.ToolView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tools [post]
// @Security Bearer
func (h *Handler) CreateTool(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	tool, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, views.Tool(tool))
}

// UpdateTool applies a partial update
// @Summary Update a tool
// @Description Only the fields present in the body are changed, admin only
// @Tags Tools
// @Accept json
// @Produce json
// @Param id path int true "Tool ID"
// @Param tool body UpdateToolRequest true "Fields to change"
// @Success 200 {object} views.ToolView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tools/{id} [put]
// @Security Bearer
func (h *Handler) UpdateTool(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrToolNotFound)
		return
	}

	var req UpdateToolRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.BindingError(c, err)
		return
	}

	tool, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Tool(tool))
}

// DeleteTool deletes a tool
// @Summary Delete a tool
// @Description Delete a tool and its paper links, admin only
// @Tags Tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tools/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteTool(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrToolNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgToolDeleted})
}
