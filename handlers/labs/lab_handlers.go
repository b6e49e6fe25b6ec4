package labs

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

// ListLabs lists labs
// @Summary List labs
// @Description List labs ordered by name. q matches name or description, country is an exact match
// @Tags Labs
// @Produce json
// @Param q query string false "Keyword"
// @Param country query string false "Country"
// @Success 200 {array} views.LabView
// @Router /labs [get]
func (h *Handler) ListLabs(c *gin.Context) {
	labs, err := h.service.List(c.Request.Context(), services.LabFilter{
		Keyword: utils.Keyword(c),
		Country: c.Query("country"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Labs(labs))
}

// GetLab returns one lab
// @Summary Get a lab
// @Tags Labs
// @Produce json
// @Param id path int true "Lab ID"
// @Success 200 {object} views.LabView
// @Failure 404 {object} map[string]string
// @Router /labs/{id} [get]
func (h *Handler) GetLab(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrLabNotFound)
		return
	}

	lab, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Lab(lab))
}

// CreateLab creates a lab
// @Summary Create a lab
// @Tags Labs
// @Accept json
// @Produce json
// @Param lab body CreateLabRequest true "Lab"
// @Success 201 {object} views.LabView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /labs [post]
// @Security Bearer
func (h *Handler) CreateLab(c *gin.Context) {
	var req CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	lab, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, views.Lab(lab))
}

// UpdateLab applies a partial update
// @Summary Update a lab
// @Tags Labs
// @Accept json
// @Produce json
// @Param id path int true "Lab ID"
// @Param lab body UpdateLabRequest true "Fields to change"
// @Success 200 {object} views.LabView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /labs/{id} [put]
// @Security Bearer
func (h *Handler) UpdateLab(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrLabNotFound)
		return
	}

	var req UpdateLabRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.BindingError(c, err)
		return
	}

	lab, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Lab(lab))
}

// DeleteLab deletes a lab
// @Summary Delete a lab
// @Description Tools maintained by the lab are kept with lab_id set to null
// @Tags Labs
// @Produce json
// @Param id path int true "Lab ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /labs/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteLab(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrLabNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgLabDeleted})
}
