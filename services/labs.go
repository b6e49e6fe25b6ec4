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

const entityLab = "lab"

type LabService struct {
	store
}

type LabFilter struct {
	Keyword string
	Country string
}

type LabInput struct {
	Name        string
	Institution *string
	Country     *string
	Website     *string
	Description *string
}

type LabPatch struct {
	Name        patch.Field[string] `json:"name"`
	Institution patch.Field[string] `json:"institution"`
	Country     patch.Field[string] `json:"country"`
	Website     patch.Field[string] `json:"website"`
	Description patch.Field[string] `json:"description"`
}

func preloadLab(db *gorm.DB) *gorm.DB {
	return db.Preload("Tools", byName)
}

func (s *LabService) List(ctx context.Context, filter LabFilter) ([]models.Lab, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	q := database.Contains(db.Model(&models.Lab{}), filter.Keyword, "name", "description")
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}

	labs := []models.Lab{}
	if err := preloadLab(q).Order("name ASC").Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

func (s *LabService) Get(ctx context.Context, id uint) (*models.Lab, error) {
	db, cancel := s.session(ctx)
	defer cancel()
	return s.get(db, id)
}

func (s *LabService) get(db *gorm.DB, id uint) (*models.Lab, error) {
	var lab models.Lab
	if err := preloadLab(db).First(&lab, id).Error; err != nil {
		return nil, lookupError(err, entityLab, id)
	}
	return &lab, nil
}

func (s *LabService) Create(ctx context.Context, in LabInput) (*models.Lab, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	lab := models.Lab{
		Name:        in.Name,
		Institution: in.Institution,
		Country:     in.Country,
		Website:     in.Website,
		Description: in.Description,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Lab{}, entityLab, "name", in.Name, 0); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&lab).Error
	})
	if err != nil {
		return nil, writeError(err, entityLab)
	}

	s.publish(entityLab, ActionCreated, lab.ID)
	return s.get(db, lab.ID)
}

func (s *LabService) Update(ctx context.Context, id uint, in LabPatch) (*models.Lab, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var lab models.Lab
		if err := tx.First(&lab, id).Error; err != nil {
			return lookupError(err, entityLab, id)
		}

		updates := map[string]interface{}{}
		if in.Name.Set {
			if in.Name.Null || strings.TrimSpace(in.Name.Value) == "" {
				return invalid("name must not be empty")
			}
			if err := ensureUnique(tx, &models.Lab{}, entityLab, "name", in.Name.Value, id); err != nil {
				return err
			}
			updates["name"] = in.Name.Value
		}
		for column, field := range map[string]patch.Field[string]{
			"institution": in.Institution,
			"country":     in.Country,
			"website":     in.Website,
			"description": in.Description,
		} {
			if field.Set {
				updates[column] = field.Ptr()
			}
		}

		if len(updates) == 0 {
			return nil
		}
		changed = true
		return tx.Model(&lab).Updates(updates).Error
	})
	if err != nil {
		return nil, writeError(err, entityLab)
	}

	if changed {
		s.publish(entityLab, ActionUpdated, id)
	}
	return s.get(db, id)
}

// Delete removes the lab; the store clears lab_id on the tools it maintained
func (s *LabService) Delete(ctx context.Context, id uint) error {
	db, cancel := s.session(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var lab models.Lab
		if err := tx.First(&lab, id).Error; err != nil {
			return lookupError(err, entityLab, id)
		}
		return tx.Delete(&lab).Error
	})
	if err != nil {
		return err
	}

	s.publish(entityLab, ActionDeleted, id)
	return nil
}
