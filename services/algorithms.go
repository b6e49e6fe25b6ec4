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

const entityAlgorithm = "algorithm"

type AlgorithmService struct {
	store
}

type AlgorithmFilter struct {
	Keyword   string
	ProblemID *uint
}

type AlgorithmInput struct {
	Name        string
	ProblemID   uint
	Description *string
	Year        *int
}

// AlgorithmPatch holds the fields of a partial update; unset fields are left alone
type AlgorithmPatch struct {
	Name        patch.Field[string] `json:"name"`
	ProblemID   patch.Field[uint]   `json:"problem_id"`
	Description patch.Field[string] `json:"description"`
	Year        patch.Field[int]    `json:"year"`
}

func preloadAlgorithm(db *gorm.DB) *gorm.DB {
	return db.Preload("Problem").Preload("Tools", byName).Preload("Papers", byTitle)
}

// List returns algorithms ordered by name, optionally filtered by keyword and problem
func (s *AlgorithmService) List(ctx context.Context, filter AlgorithmFilter) ([]models.Algorithm, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	q := database.Contains(db.Model(&models.Algorithm{}), filter.Keyword, "name", "description")
	if filter.ProblemID != nil {
		q = q.Where("problem_id = ?", *filter.ProblemID)
	}

	algorithms := []models.Algorithm{}
	if err := preloadAlgorithm(q).Order("name ASC").Find(&algorithms).Error; err != nil {
		return nil, err
	}
	return algorithms, nil
}

func (s *AlgorithmService) Get(ctx context.Context, id uint) (*models.Algorithm, error) {
	db, cancel := s.session(ctx)
	defer cancel()
	return s.get(db, id)
}

func (s *AlgorithmService) get(db *gorm.DB, id uint) (*models.Algorithm, error) {
	var algorithm models.Algorithm
	if err := preloadAlgorithm(db).First(&algorithm, id).Error; err != nil {
		return nil, lookupError(err, entityAlgorithm, id)
	}
	return &algorithm, nil
}

func (s *AlgorithmService) Create(ctx context.Context, in AlgorithmInput) (*models.Algorithm, error) {
	if strings.TrimSpace(in.Name) == "" || in.ProblemID == 0 {
		return nil, invalid("name and problem_id are required")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	algorithm := models.Algorithm{
		Name:        in.Name,
		ProblemID:   in.ProblemID,
		Description: in.Description,
		Year:        in.Year,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Algorithm{}, entityAlgorithm, "name", in.Name, 0); err != nil {
			return err
		}
		if err := ensureExists(tx, &models.Problem{}, "problem", in.ProblemID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&algorithm).Error
	})
	if err != nil {
		return nil, writeError(err, entityAlgorithm)
	}

	s.publish(entityAlgorithm, ActionCreated, algorithm.ID)
	return s.get(db, algorithm.ID)
}

func (s *AlgorithmService) Update(ctx context.Context, id uint, in AlgorithmPatch) (*models.Algorithm, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var algorithm models.Algorithm
		if err := tx.First(&algorithm, id).Error; err != nil {
			return lookupError(err, entityAlgorithm, id)
		}

		updates := map[string]interface{}{}
		if in.Name.Set {
			if in.Name.Null || strings.TrimSpace(in.Name.Value) == "" {
				return invalid("name must not be empty")
			}
			if err := ensureUnique(tx, &models.Algorithm{}, entityAlgorithm, "name", in.Name.Value, id); err != nil {
				return err
			}
			updates["name"] = in.Name.Value
		}
		if in.ProblemID.Set {
			if in.ProblemID.Null || in.ProblemID.Value == 0 {
				return invalid("problem_id must not be empty")
			}
			if err := ensureExists(tx, &models.Problem{}, "problem", in.ProblemID.Value); err != nil {
				return err
			}
			updates["problem_id"] = in.ProblemID.Value
		}
		if in.Description.Set {
			updates["description"] = in.Description.Ptr()
		}
		if in.Year.Set {
			updates["year"] = in.Year.Ptr()
		}

		if len(updates) == 0 {
			return nil
		}
		changed = true
		return tx.Model(&algorithm).Updates(updates).Error
	})
	if err != nil {
		return nil, writeError(err, entityAlgorithm)
	}

	if changed {
		s.publish(entityAlgorithm, ActionUpdated, id)
	}
	return s.get(db, id)
}

// Delete removes the algorithm and its paper links. The store refuses the
// delete while tools still reference the algorithm; the transaction then
// rolls back and the links stay intact.
func (s *AlgorithmService) Delete(ctx context.Context, id uint) error {
	db, cancel := s.session(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var algorithm models.Algorithm
		if err := tx.First(&algorithm, id).Error; err != nil {
			return lookupError(err, entityAlgorithm, id)
		}
		if err := tx.Model(&algorithm).Association("Papers").Clear(); err != nil {
			return err
		}
		return tx.Delete(&algorithm).Error
	})
	if err != nil {
		return err
	}

	s.publish(entityAlgorithm, ActionDeleted, id)
	return nil
}
