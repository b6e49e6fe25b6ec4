package services

import (
	"context"

	"github.com/wangyukai585/BioAlgoDB/models"

	"gorm.io/gorm"
)

const entityProblem = "problem"

// ProblemService is read-only; problems are managed through seed data
type ProblemService struct {
	store
}

func preloadProblem(db *gorm.DB) *gorm.DB {
	return db.Preload("Algorithms", byName)
}

func (s *ProblemService) List(ctx context.Context) ([]models.Problem, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	problems := []models.Problem{}
	if err := preloadProblem(db).Order("name ASC").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func (s *ProblemService) Get(ctx context.Context, id uint) (*models.Problem, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var problem models.Problem
	if err := preloadProblem(db).First(&problem, id).Error; err != nil {
		return nil, lookupError(err, entityProblem, id)
	}
	return &problem, nil
}
