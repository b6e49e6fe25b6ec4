// Package views shapes models into response bodies.
//
// A projection expands relationships of its root exactly one level deep and
// always through a summary type, so the Algorithm/Tool/Paper cycle can never
// recurse. Slices are never nil so empty relations encode as [].
package views

import (
	"time"

	"github.com/wangyukai585/BioAlgoDB/models"
)

type ProblemView struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Algorithms  []AlgorithmBrief `json:"algorithms"`
}

type AlgorithmView struct {
	ID          uint            `json:"id"`
	ProblemID   uint            `json:"problem_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Year        *int            `json:"year"`
	Problem     *ProblemSummary `json:"problem"`
	Tools       []ToolSummary   `json:"tools"`
	Papers      []PaperSummary  `json:"papers"`
}

type ToolView struct {
	ID          uint              `json:"id"`
	AlgorithmID uint              `json:"algorithm_id"`
	LabID       *uint             `json:"lab_id"`
	Name        string            `json:"name"`
	Version     *string           `json:"version"`
	Description *string           `json:"description"`
	Website     *string           `json:"website"`
	License     *string           `json:"license"`
	Algorithm   *AlgorithmSummary `json:"algorithm"`
	Lab         *LabSummary       `json:"lab"`
	Papers      []PaperSummary    `json:"papers"`
}

type LabView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Institution *string       `json:"institution"`
	Country     *string       `json:"country"`
	Website     *string       `json:"website"`
	Description *string       `json:"description"`
	Tools       []ToolSummary `json:"tools"`
}

type PaperView struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Year       *int               `json:"year"`
	DOI        *string            `json:"doi"`
	Journal    *string            `json:"journal"`
	Authors    *string            `json:"authors"`
	Algorithms []AlgorithmSummary `json:"algorithms"`
	Tools      []ToolSummary      `json:"tools"`
}

// UserView never carries the password hash
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func Problem(p *models.Problem) ProblemView {
	return ProblemView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Algorithms:  algorithmBriefs(p.Algorithms),
	}
}

func Algorithm(a *models.Algorithm) AlgorithmView {
	return AlgorithmView{
		ID:          a.ID,
		ProblemID:   a.ProblemID,
		Name:        a.Name,
		Description: a.Description,
		Year:        a.Year,
		Problem:     problemSummary(a.Problem),
		Tools:       toolSummaries(a.Tools),
		Papers:      paperSummaries(a.Papers),
	}
}

func Tool(t *models.Tool) ToolView {
	return ToolView{
		ID:          t.ID,
		AlgorithmID: t.AlgorithmID,
		LabID:       t.LabID,
		Name:        t.Name,
		Version:     t.Version,
		Description: t.Description,
		Website:     t.Website,
		License:     t.License,
		Algorithm:   algorithmSummary(t.Algorithm),
		Lab:         labSummary(t.Lab),
		Papers:      paperSummaries(t.Papers),
	}
}

func Lab(l *models.Lab) LabView {
	return LabView{
		ID:          l.ID,
		Name:        l.Name,
		Institution: l.Institution,
		Country:     l.Country,
		Website:     l.Website,
		Description: l.Description,
		Tools:       toolSummaries(l.Tools),
	}
}

func Paper(p *models.Paper) PaperView {
	return PaperView{
		ID:         p.ID,
		Title:      p.Title,
		Year:       p.Year,
		DOI:        p.DOI,
		Journal:    p.Journal,
		Authors:    p.Authors,
		Algorithms: algorithmSummaries(p.Algorithms),
		Tools:      toolSummaries(p.Tools),
	}
}

func User(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func Problems(problems []models.Problem) []ProblemView {
	out := make([]ProblemView, len(problems))
	for i := range problems {
		out[i] = Problem(&problems[i])
	}
	return out
}

func Algorithms(algorithms []models.Algorithm) []AlgorithmView {
	out := make([]AlgorithmView, len(algorithms))
	for i := range algorithms {
		out[i] = Algorithm(&algorithms[i])
	}
	return out
}

func Tools(tools []models.Tool) []ToolView {
	out := make([]ToolView, len(tools))
	for i := range tools {
		out[i] = Tool(&tools[i])
	}
	return out
}

func Labs(labs []models.Lab) []LabView {
	out := make([]LabView, len(labs))
	for i := range labs {
		out[i] = Lab(&labs[i])
	}
	return out
}

func Papers(papers []models.Paper) []PaperView {
	out := make([]PaperView, len(papers))
	for i := range papers {
		out[i] = Paper(&papers[i])
	}
	return out
}

func Users(users []models.User) []UserView {
	out := make([]UserView, len(users))
	for i := range users {
		out[i] = User(&users[i])
	}
	return out
}
