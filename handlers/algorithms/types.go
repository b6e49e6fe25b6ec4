package algorithms

import "github.com/wangyukai585/BioAlgoDB/services"

// Error messages
const (
	ErrAlgorithmNotFound = "algorithm not found"
	ErrInvalidProblemID  = "problem_id must be a positive integer"
)

const MsgAlgorithmDeleted = "algorithm deleted"

// Handler serves the algorithm endpoints
type Handler struct {
	service *services.AlgorithmService
}

// CreateAlgorithmRequest is the body of POST /algorithms
type CreateAlgorithmRequest struct {
	Name        string  `json:"name" binding:"required"`
	ProblemID   uint    `json:"problem_id" binding:"required"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
}

func (r CreateAlgorithmRequest) input() services.AlgorithmInput {
	return services.AlgorithmInput{
		Name:        r.Name,
		ProblemID:   r.ProblemID,
		Description: r.Description,
		Year:        r.Year,
	}
}

// UpdateAlgorithmRequest is the body of PUT /algorithms/{id}; omitted fields are kept
type UpdateAlgorithmRequest = services.AlgorithmPatch
