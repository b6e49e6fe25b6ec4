package services

import (
	"context"
	"strings"

	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/utils/patch"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityTool = "tool"

type ToolService struct {
	store
}

type ToolFilter struct {
	Keyword     string
	AlgorithmID *uint
	LabID       *uint
}

type ToolInput struct {
	Name        string
	AlgorithmID uint
	LabID       *uint
	Version     *string
	Description *string
	Website     *string
	License     *string
}

type ToolPatch struct {
	Name        patch.Field[string] `json:"name"`
	AlgorithmID patch.Field[uint]   `json:"algorithm_id"`
	LabID       patch.Field[uint]   `json:"lab_id"`
	Version     patch.Field[string] `json:"version"`
	Description patch.Field[string] `json:"description"`
	Website     patch.Field[string] `json:"website"`
	License     patch.Field[string] `json:"license"`
}

func preloadTool(db *gorm.DB) *gorm.DB {
	return db.Preload("Algorithm").Preload("Lab").Preload("Papers", byTitle)
}

func (s *ToolService) List(ctx context.Context, filter ToolFilter) ([]models.Tool, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	q := database.Contains(db.Model(&models.Tool{}), filter.Keyword, "name", "description")
	if filter.AlgorithmID != nil {
		q = q.Where("algorithm_id = ?", *filter.AlgorithmID)
	}
	if filter.LabID != nil {
		q = q.Where("lab_id = ?", *filter.LabID)
	}

	tools := []models.Tool{}
	if err := preloadTool(q).Order("name ASC").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *ToolService) Get(ctx context.Context, id uint) (*models.Tool, error) {
	db, cancel := s.session(ctx)
	defer cancel()
	return s.get(db, id)
}

func (s *ToolService) get(db *gorm.DB, id uint) (*models.Tool, error) {
	var tool models.Tool
	if err := preloadTool(db).First(&tool, id).Error; err != nil {
		return nil, lookupError(err, entityTool, id)
	}
	return &tool, nil
}

func (s *ToolService) Create(ctx context.Context, in ToolInput) (*models.Tool, error) {
	if strings.TrimSpace(in.Name) == "" || in.AlgorithmID == 0 {
		return nil, invalid("name and algorithm_id are required")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	tool := models.Tool{
		Name:        in.Name,
		AlgorithmID: in.AlgorithmID,
		LabID:       in.LabID,
		Version:     in.Version,
		Description: in.Description,
		Website:     in.Website,
		License:     in.License,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Tool{}, entityTool, "name", in.Name, 0); err != nil {
			return err
		}
		if err := ensureExists(tx, &models.Algorithm{}, entityAlgorithm, in.AlgorithmID); err != nil {
			return err
		}
		if in.LabID != nil {
			if err := ensureExists(tx, &models.Lab{}, entityLab, *in.LabID); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(&tool).Error
	})
	if err != nil {
		return nil, writeError(err, entityTool)
	}

	s.publish(entityTool, ActionCreated, tool.ID)
	return s.get(db, tool.ID)
}

func (s *ToolService) Update(ctx context.Context, id uint, in ToolPatch) (*models.Tool, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var tool models.Tool
		if err := tx.First(&tool, id).Error; err != nil {
			return lookupError(err, entityTool, id)
		}

		updates := map[string]interface{}{}
		if in.Name.Set {
			if in.Name.Null || strings.TrimSpace(in.Name.Value) == "" {
				return invalid("name must not be empty")
			}
			if err := ensureUnique(tx, &models.Tool{}, entityTool, "name", in.Name.Value, id); err != nil {
				return err
			}
			updates["name"] = in.Name.Value
		}
		if in.AlgorithmID.Set {
			if in.AlgorithmID.Null || in.AlgorithmID.Value == 0 {
				return invalid("algorithm_id must not be empty")
			}
			if err := ensureExists(tx, &models.Algorithm{}, entityAlgorithm, in.AlgorithmID.Value); err != nil {
				return err
			}
			updates["algorithm_id"] = in.AlgorithmID.Value
		}
		if in.LabID.Set {
			if !in.LabID.Null {
				if err := ensureExists(tx, &models.Lab{}, entityLab, in.LabID.Value); err != nil {
					return err
				}
			}
			updates["lab_id"] = in.LabID.Ptr()
		}
		for column, field := range map[string]patch.Field[string]{
			"version":     in.Version,
			"description": in.Description,
			"website":     in.Website,
			"license":     in.License,
		} {
			if field.Set {
				updates[column] = field.Ptr()
			}
		}

		if len(updates) == 0 {
			return nil
		}
		changed = true
		return tx.Model(&tool).Updates(updates).Error
	})
	if err != nil {
		return nil, writeError(err, entityTool)
	}

	if changed {
		s.publish(entityTool, ActionUpdated, id)
	}
	return s.get(db, id)
}

func (s *ToolService) Delete(ctx context.Context, id uint) error {
	db, cancel := s.session(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var tool models.Tool
		if err := tx.First(&tool, id).Error; err != nil {
			return lookupError(err, entityTool, id)
		}
		if err := tx.Model(&tool).Association("Papers").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tool).Error
	})
	if err != nil {
		return err
	}

	s.publish(entityTool, ActionDeleted, id)
	return nil
}
