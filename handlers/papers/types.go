package papers

import "github.com/wangyukai585/BioAlgoDB/services"

const (
	ErrPaperNotFound      = "paper not found"
	ErrInvalidAlgorithmID = "algorithm_id must be a positive integer"
	ErrInvalidToolID      = "tool_id must be a positive integer"
	MsgPaperDeleted       = "paper deleted"
)

type Handler struct {
	service *services.PaperService
}

type CreatePaperRequest struct {
	Title        string  `json:"title" binding:"required"`
	Year         *int    `json:"year"`
	DOI          *string `json:"doi"`
	Journal      *string `json:"journal"`
	Authors      *string `json:"authors"`
	AlgorithmIDs []uint  `json:"algorithm_ids"`
	ToolIDs      []uint  `json:"tool_ids"`
}

func (r CreatePaperRequest) input() services.PaperInput {
	return services.PaperInput{
		Title:        r.Title,
		Year:         r.Year,
		DOI:          r.DOI,
		Journal:      r.Journal,
		Authors:      r.Authors,
		AlgorithmIDs: r.AlgorithmIDs,
		ToolIDs:      r.ToolIDs,
	}
}

// UpdatePaperRequest: algorithm_ids and tool_ids replace the whole link set when present
type UpdatePaperRequest = services.PaperPatch
