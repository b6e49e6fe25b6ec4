package views

import "github.com/wangyukai585/BioAlgoDB/models"

// Summary views are the only shapes a related entity takes when nested
// inside another projection. None of them carries a relationship field.

type ProblemSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AlgorithmSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AlgorithmBrief is the algorithm shape listed under a problem
type AlgorithmBrief struct {
	ID          uint    `json:"id"`
	ProblemID   uint    `json:"problem_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
}

type ToolSummary struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Version *string `json:"version"`
}

type LabSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PaperSummary struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Year  *int    `json:"year"`
	DOI   *string `json:"doi"`
}

func problemSummary(p *models.Problem) *ProblemSummary {
	if p == nil {
		return nil
	}
	return &ProblemSummary{ID: p.ID, Name: p.Name}
}

func algorithmSummary(a *models.Algorithm) *AlgorithmSummary {
	if a == nil {
		return nil
	}
	return &AlgorithmSummary{ID: a.ID, Name: a.Name}
}

func labSummary(l *models.Lab) *LabSummary {
	if l == nil {
		return nil
	}
	return &LabSummary{ID: l.ID, Name: l.Name}
}

func algorithmSummaries(algorithms []models.Algorithm) []AlgorithmSummary {
	out := make([]AlgorithmSummary, len(algorithms))
	for i := range algorithms {
		out[i] = AlgorithmSummary{ID: algorithms[i].ID, Name: algorithms[i].Name}
	}
	return out
}

func algorithmBriefs(algorithms []models.Algorithm) []AlgorithmBrief {
	out := make([]AlgorithmBrief, len(algorithms))
	for i, a := range algorithms {
		out[i] = AlgorithmBrief{
			ID:          a.ID,
			ProblemID:   a.ProblemID,
			Name:        a.Name,
			Description: a.Description,
			Year:        a.Year,
		}
	}
	return out
}

func toolSummaries(tools []models.Tool) []ToolSummary {
	out := make([]ToolSummary, len(tools))
	for i, t := range tools {
		out[i] = ToolSummary{ID: t.ID, Name: t.Name, Version: t.Version}
	}
	return out
}

func paperSummaries(papers []models.Paper) []PaperSummary {
	out := make([]PaperSummary, len(papers))
	for i, p := range papers {
		out[i] = PaperSummary{ID: p.ID, Title: p.Title, Year: p.Year, DOI: p.DOI}
	}
	return out
}
