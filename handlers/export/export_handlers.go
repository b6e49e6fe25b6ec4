package export

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils/logging"
	"github.com/wangyukai585/BioAlgoDB/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "bioalgodb-catalog.xlsx"
)

type Handler struct {
	service *services.ExportService
}

// ExportCatalog streams the catalog as an Excel workbook
// @Summary Export the catalog
// @Description One sheet per entity (Problems, Algorithms, Tools, Labs, Papers)
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string
// @Router /export/catalog.xlsx [get]
func (h *Handler) ExportCatalog(c *gin.Context) {
	f, err := h.service.Workbook(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		logging.FromContext(c).WithError(err).Error("write workbook")
		response.Error(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, ContentTypeXLSX, buf.Bytes())
}
