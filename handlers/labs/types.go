package labs

import "github.com/wangyukai585/BioAlgoDB/services"

const (
	ErrLabNotFound = "lab not found"
	MsgLabDeleted  = "lab deleted"
)

type Handler struct {
	service *services.LabService
}

type CreateLabRequest struct {
	Name        string  `json:"name" binding:"required"`
	Institution *string `json:"institution"`
	Country     *string `json:"country"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

func (r CreateLabRequest) input() services.LabInput {
	return services.LabInput{
		Name:        r.Name,
		Institution: r.Institution,
		Country:     r.Country,
		Website:     r.Website,
		Description: r.Description,
	}
}

type UpdateLabRequest = services.LabPatch
