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

const entityPaper = "paper"

type PaperService struct {
	store
}

type PaperFilter struct {
	Keyword     string
	AlgorithmID *uint
	ToolID      *uint
}

type PaperInput struct {
	Title        string
	Year         *int
	DOI          *string
	Journal      *string
	Authors      *string
	AlgorithmIDs []uint
	ToolIDs      []uint
}

// PaperPatch replaces the link sets when AlgorithmIDs or ToolIDs are present
type PaperPatch struct {
	Title        patch.Field[string] `json:"title"`
	Year         patch.Field[int]    `json:"year"`
	DOI          patch.Field[string] `json:"doi"`
	Journal      patch.Field[string] `json:"journal"`
	Authors      patch.Field[string] `json:"authors"`
	AlgorithmIDs patch.Field[[]uint] `json:"algorithm_ids"`
	ToolIDs      patch.Field[[]uint] `json:"tool_ids"`
}

func preloadPaper(db *gorm.DB) *gorm.DB {
	return db.Preload("Algorithms", byName).Preload("Tools", byName)
}

// List matches the keyword against title, journal and authors
func (s *PaperService) List(ctx context.Context, filter PaperFilter) ([]models.Paper, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	q := database.Contains(db.Model(&models.Paper{}), filter.Keyword, "title", "journal", "authors")
	if filter.AlgorithmID != nil {
		q = q.Where("id IN (?)", db.Table("algorithm_paper").Select("paper_id").Where("algorithm_id = ?", *filter.AlgorithmID))
	}
	if filter.ToolID != nil {
		q = q.Where("id IN (?)", db.Table("tool_paper").Select("paper_id").Where("tool_id = ?", *filter.ToolID))
	}

	papers := []models.Paper{}
	if err := preloadPaper(q).Order("title ASC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func (s *PaperService) Get(ctx context.Context, id uint) (*models.Paper, error) {
	db, cancel := s.session(ctx)
	defer cancel()
	return s.get(db, id)
}

func (s *PaperService) get(db *gorm.DB, id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := preloadPaper(db).First(&paper, id).Error; err != nil {
		return nil, lookupError(err, entityPaper, id)
	}
	return &paper, nil
}

func (s *PaperService) Create(ctx context.Context, in PaperInput) (*models.Paper, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	paper := models.Paper{
		Title:   in.Title,
		Year:    in.Year,
		DOI:     normalizeDOI(in.DOI),
		Journal: in.Journal,
		Authors: in.Authors,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if paper.DOI != nil {
			if err := ensureUnique(tx, &models.Paper{}, entityPaper, "doi", *paper.DOI, 0); err != nil {
				return err
			}
		}
		algorithms, err := findAlgorithms(tx, in.AlgorithmIDs)
		if err != nil {
			return err
		}
		tools, err := findTools(tx, in.ToolIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&paper).Error; err != nil {
			return err
		}
		return replaceLinks(tx, &paper, algorithms, tools)
	})
	if err != nil {
		return nil, writeError(err, entityPaper)
	}

	s.publish(entityPaper, ActionCreated, paper.ID)
	return s.get(db, paper.ID)
}

func (s *PaperService) Update(ctx context.Context, id uint, in PaperPatch) (*models.Paper, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var paper models.Paper
		if err := tx.First(&paper, id).Error; err != nil {
			return lookupError(err, entityPaper, id)
		}

		updates := map[string]interface{}{}
		if in.Title.Set {
			if in.Title.Null || strings.TrimSpace(in.Title.Value) == "" {
				return invalid("title must not be empty")
			}
			updates["title"] = in.Title.Value
		}
		if in.DOI.Set {
			doi := normalizeDOI(in.DOI.Ptr())
			if doi != nil {
				if err := ensureUnique(tx, &models.Paper{}, entityPaper, "doi", *doi, id); err != nil {
					return err
				}
			}
			updates["doi"] = doi
		}
		if in.Year.Set {
			updates["year"] = in.Year.Ptr()
		}
		if in.Journal.Set {
			updates["journal"] = in.Journal.Ptr()
		}
		if in.Authors.Set {
			updates["authors"] = in.Authors.Ptr()
		}

		if len(updates) > 0 {
			if err := tx.Model(&paper).Updates(updates).Error; err != nil {
				return err
			}
			changed = true
		}

		if in.AlgorithmIDs.Set {
			algorithms, err := findAlgorithms(tx, in.AlgorithmIDs.Value)
			if err != nil {
				return err
			}
			if err := tx.Model(&paper).Association("Algorithms").Replace(algorithms); err != nil {
				return err
			}
			changed = true
		}
		if in.ToolIDs.Set {
			tools, err := findTools(tx, in.ToolIDs.Value)
			if err != nil {
				return err
			}
			if err := tx.Model(&paper).Association("Tools").Replace(tools); err != nil {
				return err
			}
			changed = true
		}
		return nil
	})
	if err != nil {
		return nil, writeError(err, entityPaper)
	}

	if changed {
		s.publish(entityPaper, ActionUpdated, id)
	}
	return s.get(db, id)
}

func (s *PaperService) Delete(ctx context.Context, id uint) error {
	db, cancel := s.session(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var paper models.Paper
		if err := tx.First(&paper, id).Error; err != nil {
			return lookupError(err, entityPaper, id)
		}
		if err := tx.Model(&paper).Association("Algorithms").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&paper).Association("Tools").Clear(); err != nil {
			return err
		}
		return tx.Delete(&paper).Error
	})
	if err != nil {
		return err
	}

	s.publish(entityPaper, ActionDeleted, id)
	return nil
}

func replaceLinks(tx *gorm.DB, paper *models.Paper, algorithms []models.Algorithm, tools []models.Tool) error {
	if len(algorithms) > 0 {
		if err := tx.Model(paper).Association("Algorithms").Append(algorithms); err != nil {
			return err
		}
	}
	if len(tools) > 0 {
		if err := tx.Model(paper).Association("Tools").Append(tools); err != nil {
			return err
		}
	}
	return nil
}

// findAlgorithms loads every referenced algorithm or fails with a validation error
func findAlgorithms(tx *gorm.DB, ids []uint) ([]models.Algorithm, error) {
	ids = uniqueIDs(ids)
	algorithms := []models.Algorithm{}
	if len(ids) == 0 {
		return algorithms, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&algorithms).Error; err != nil {
		return nil, err
	}
	if len(algorithms) != len(ids) {
		return nil, invalid("algorithm_ids contains unknown ids")
	}
	return algorithms, nil
}

func findTools(tx *gorm.DB, ids []uint) ([]models.Tool, error) {
	ids = uniqueIDs(ids)
	tools := []models.Tool{}
	if len(ids) == 0 {
		return tools, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&tools).Error; err != nil {
		return nil, err
	}
	if len(tools) != len(ids) {
		return nil, invalid("tool_ids contains unknown ids")
	}
	return tools, nil
}

// normalizeDOI stores a blank doi as NULL so it does not collide with other blanks
func normalizeDOI(doi *string) *string {
	if doi == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*doi)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
