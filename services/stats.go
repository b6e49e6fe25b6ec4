package services

import (
	"context"

	"github.com/wangyukai585/BioAlgoDB/metrics"
	"github.com/wangyukai585/BioAlgoDB/models"
)

type StatsService struct {
	store
}

// ProblemAlgorithmCount is one row of the per-problem breakdown
type ProblemAlgorithmCount struct {
	ProblemID      uint   `json:"problem_id"`
	ProblemName    string `json:"problem_name"`
	AlgorithmCount int64  `json:"algorithm_count"`
}

type Stats struct {
	AlgorithmCount     int64                   `json:"algorithm_count"`
	ToolCount          int64                   `json:"tool_count"`
	PaperCount         int64                   `json:"paper_count"`
	AlgorithmByProblem []ProblemAlgorithmCount `json:"algorithm_by_problem"`
}

// Get counts the catalog. Every problem appears in the breakdown,
// including those without algorithms.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	stats := Stats{AlgorithmByProblem: []ProblemAlgorithmCount{}}
	if err := db.Model(&models.Algorithm{}).Count(&stats.AlgorithmCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Tool{}).Count(&stats.ToolCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Paper{}).Count(&stats.PaperCount).Error; err != nil {
		return nil, err
	}
	metrics.CatalogRecords.WithLabelValues(entityAlgorithm).Set(float64(stats.AlgorithmCount))
	metrics.CatalogRecords.WithLabelValues(entityTool).Set(float64(stats.ToolCount))
	metrics.CatalogRecords.WithLabelValues(entityPaper).Set(float64(stats.PaperCount))

	err := db.Table("problem").
		Select("problem.id AS problem_id, problem.name AS problem_name, COUNT(algorithm.id) AS algorithm_count").
		Joins("LEFT JOIN algorithm ON algorithm.problem_id = problem.id").
		Group("problem.id, problem.name").
		Order("problem.name ASC").
		Scan(&stats.AlgorithmByProblem).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
