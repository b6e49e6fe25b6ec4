package tools

import "github.com/wangyukai585/BioAlgoDB/services"

// Error messages
const (
	ErrToolNotFound       = "tool not found"
	ErrInvalidAlgorithmID = "algorithm_id must be a positive integer"
	ErrInvalidLabID       = "lab_id must be a positive integer"
)

const MsgToolDeleted = "tool deleted"

type Handler struct {
	service *services.ToolService
}

// CreateToolRequest is the body of POST /tools
type CreateToolRequest struct {
	Name        string  `json:"name" binding:"required"`
	AlgorithmID uint    `json:"algorithm_id" binding:"required"`
	LabID       *uint   `json:"lab_id"`
	Version     *string `json:"version"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	License     *string `json:"license"`
}

func (r CreateToolRequest) input() services.ToolInput {
	return services.ToolInput{
		Name:        r.Name,
		AlgorithmID: r.AlgorithmID,
		LabID:       r.LabID,
		Version:     r.Version,
		Description: r.Description,
		Website:     r.Website,
		License:     r.License,
	}
}

// UpdateToolRequest is the body of PUT /tools/{id}; "lab_id": null detaches the lab
type UpdateToolRequest = services.ToolPatch
