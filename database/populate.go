package database

import (
	"fmt"
	"os"

	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// AdminAccount is created when the user table is empty
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// Seed is the layout of a SEED_FILE. References between records use names.
type Seed struct {
	Problems []struct {
		Name        string  `yaml:"name"`
		Description *string `yaml:"description"`
	} `yaml:"problems"`
	Algorithms []struct {
		Name        string  `yaml:"name"`
		Problem     string  `yaml:"problem"`
		Description *string `yaml:"description"`
		Year        *int    `yaml:"year"`
	} `yaml:"algorithms"`
	Labs []struct {
		Name        string  `yaml:"name"`
		Institution *string `yaml:"institution"`
		Country     *string `yaml:"country"`
		Website     *string `yaml:"website"`
		Description *string `yaml:"description"`
	} `yaml:"labs"`
	Tools []struct {
		Name        string  `yaml:"name"`
		Algorithm   string  `yaml:"algorithm"`
		Lab         *string `yaml:"lab"`
		Version     *string `yaml:"version"`
		Description *string `yaml:"description"`
		Website     *string `yaml:"website"`
		License     *string `yaml:"license"`
	} `yaml:"tools"`
	Papers []struct {
		Title      string   `yaml:"title"`
		Year       *int     `yaml:"year"`
		DOI        *string  `yaml:"doi"`
		Journal    *string  `yaml:"journal"`
		Authors    *string  `yaml:"authors"`
		Algorithms []string `yaml:"algorithms"`
		Tools      []string `yaml:"tools"`
	} `yaml:"papers"`
	Users []struct {
		Username     string `yaml:"username"`
		Email        string `yaml:"email"`
		Role         string `yaml:"role"`
		Password     string `yaml:"password"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"users"`
}

// Populate creates the default admin when no user exists, then applies the
// optional seed file. Records that already exist are left untouched.
func Populate(db *gorm.DB, admin AdminAccount, seedFile string, log *logrus.Logger) error {
	var countUser int64
	if err := db.Model(&models.User{}).Count(&countUser).Error; err != nil {
		return err
	}
	if countUser == 0 {
		hashed, err := utils.HashPassword(admin.Password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     admin.Username,
			Email:        admin.Email,
			PasswordHash: hashed,
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create default admin: %w", err)
		}
		log.WithField("username", user.Username).Info("default admin created")
	}

	if seedFile == "" {
		return nil
	}
	seed, err := LoadSeedFile(seedFile)
	if err != nil {
		return err
	}
	if err := ApplySeed(db, seed); err != nil {
		return err
	}
	log.WithField("file", seedFile).Info("seed data applied")
	return nil
}

// LoadSeedFile reads a YAML seed file
func LoadSeedFile(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// ApplySeed inserts the seed records in one transaction
func ApplySeed(db *gorm.DB, seed *Seed) error {
	return db.Transaction(func(tx *gorm.DB) error {
		problems := map[string]uint{}
		for _, p := range seed.Problems {
			problem := models.Problem{Name: p.Name}
			if err := tx.Where(models.Problem{Name: p.Name}).
				Attrs(models.Problem{Description: p.Description}).
				FirstOrCreate(&problem).Error; err != nil {
				return fmt.Errorf("seed problem %q: %w", p.Name, err)
			}
			problems[p.Name] = problem.ID
		}

		algorithms := map[string]uint{}
		for _, a := range seed.Algorithms {
			problemID, err := resolve(tx, problems, &models.Problem{}, "problem", a.Problem)
			if err != nil {
				return err
			}
			algorithm := models.Algorithm{Name: a.Name}
			if err := tx.Where(models.Algorithm{Name: a.Name}).
				Attrs(models.Algorithm{ProblemID: problemID, Description: a.Description, Year: a.Year}).
				FirstOrCreate(&algorithm).Error; err != nil {
				return fmt.Errorf("seed algorithm %q: %w", a.Name, err)
			}
			algorithms[a.Name] = algorithm.ID
		}

		labs := map[string]uint{}
		for _, l := range seed.Labs {
			lab := models.Lab{Name: l.Name}
			if err := tx.Where(models.Lab{Name: l.Name}).
				Attrs(models.Lab{Institution: l.Institution, Country: l.Country, Website: l.Website, Description: l.Description}).
				FirstOrCreate(&lab).Error; err != nil {
				return fmt.Errorf("seed lab %q: %w", l.Name, err)
			}
			labs[l.Name] = lab.ID
		}

		tools := map[string]uint{}
		for _, t := range seed.Tools {
			algorithmID, err := resolve(tx, algorithms, &models.Algorithm{}, "algorithm", t.Algorithm)
			if err != nil {
				return err
			}
			var labID *uint
			if t.Lab != nil && *t.Lab != "" {
				id, err := resolve(tx, labs, &models.Lab{}, "lab", *t.Lab)
				if err != nil {
					return err
				}
				labID = &id
			}
			tool := models.Tool{Name: t.Name}
			if err := tx.Where(models.Tool{Name: t.Name}).
				Attrs(models.Tool{
					AlgorithmID: algorithmID,
					LabID:       labID,
					Version:     t.Version,
					Description: t.Description,
					Website:     t.Website,
					License:     t.License,
				}).
				FirstOrCreate(&tool).Error; err != nil {
				return fmt.Errorf("seed tool %q: %w", t.Name, err)
			}
			tools[t.Name] = tool.ID
		}

		for _, p := range seed.Papers {
			var paper models.Paper
			q := tx.Where("title = ?", p.Title)
			if p.DOI != nil && *p.DOI != "" {
				q = tx.Where("doi = ?", *p.DOI)
			}
			err := q.First(&paper).Error
			if IsNotFound(err) {
				paper = models.Paper{Title: p.Title, Year: p.Year, DOI: p.DOI, Journal: p.Journal, Authors: p.Authors}
				if p.DOI != nil && *p.DOI == "" {
					paper.DOI = nil
				}
				err = tx.Omit("Algorithms", "Tools").Create(&paper).Error
			}
			if err != nil {
				return fmt.Errorf("seed paper %q: %w", p.Title, err)
			}

			for _, name := range p.Algorithms {
				id, err := resolve(tx, algorithms, &models.Algorithm{}, "algorithm", name)
				if err != nil {
					return err
				}
				if err := link(tx, "algorithm_paper", "algorithm_id", id, paper.ID); err != nil {
					return err
				}
			}
			for _, name := range p.Tools {
				id, err := resolve(tx, tools, &models.Tool{}, "tool", name)
				if err != nil {
					return err
				}
				if err := link(tx, "tool_paper", "tool_id", id, paper.ID); err != nil {
					return err
				}
			}
		}

		for _, u := range seed.Users {
			if err := seedUser(tx, u.Username, u.Email, u.Role, u.Password, u.PasswordHash); err != nil {
				return err
			}
		}
		return nil
	})
}

// resolve finds the id of a named record, first among the records seeded in this run
func resolve(tx *gorm.DB, known map[string]uint, model interface{}, entity, name string) (uint, error) {
	if id, ok := known[name]; ok {
		return id, nil
	}
	var ids []uint
	if err := tx.Model(model).Where("name = ?", name).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("seed references unknown %s %q", entity, name)
	}
	known[name] = ids[0]
	return ids[0], nil
}

// link inserts one association row unless it already exists
func link(tx *gorm.DB, table, column string, id, paperID uint) error {
	var count int64
	if err := tx.Table(table).Where(column+" = ? AND paper_id = ?", id, paperID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Table(table).Create(map[string]interface{}{column: id, "paper_id": paperID}).Error
}

func seedUser(tx *gorm.DB, username, email, role, password, passwordHash string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if passwordHash == "" {
		if password == "" {
			return fmt.Errorf("seed user %q needs password or password_hash", username)
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		passwordHash = hashed
	}
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := models.User{Username: username, Email: email, Role: role, PasswordHash: passwordHash}
	if err := tx.Create(&user).Error; err != nil {
		return fmt.Errorf("seed user %q: %w", username, err)
	}
	return nil
}
