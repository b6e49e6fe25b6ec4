package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultQueryTimeout = 10 * time.Second

// Services bundles the catalog operations around one store handle
type Services struct {
	Problems   *ProblemService
	Algorithms *AlgorithmService
	Tools      *ToolService
	Labs       *LabService
	Papers     *PaperService
	Stats      *StatsService
	Auth       *AuthService
	Users      *UserService
	Export     *ExportService
}

// Options configures New; zero values fall back to no-op collaborators
type Options struct {
	Publisher Publisher
	Logger    logrus.FieldLogger
	JWTSecret []byte
	TokenTTL  time.Duration
}

func New(db *gorm.DB, opts Options) *Services {
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	base := store{db: db, events: opts.Publisher, log: opts.Logger}
	return &Services{
		Problems:   &ProblemService{store: base},
		Algorithms: &AlgorithmService{store: base},
		Tools:      &ToolService{store: base},
		Labs:       &LabService{store: base},
		Papers:     &PaperService{store: base},
		Stats:      &StatsService{store: base},
		Auth:       &AuthService{store: base, secret: opts.JWTSecret, ttl: opts.TokenTTL},
		Users:      &UserService{store: base},
		Export:     &ExportService{store: base},
	}
}

// store is the state shared by every service
type store struct {
	db     *gorm.DB
	events Publisher
	log    logrus.FieldLogger
}

// session returns a handle bound to ctx, with a default deadline when ctx has none
func (s store) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return s.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	return s.db.WithContext(ctx), cancel
}

func (s store) publish(entity, action string, id uint) {
	s.events.Publish(Change{Entity: entity, Action: action, ID: id})
}

// ensureUnique fails with a conflict when another row already uses value in column
func ensureUnique(tx *gorm.DB, model interface{}, entity, column, value string, excludeID uint) error {
	q := tx.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict("%s %s %q already exists", entity, column, value)
	}
	return nil
}

// ensureExists fails with a validation error when no row has the given id
func ensureExists(tx *gorm.DB, model interface{}, entity string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalid("%s %d does not exist", entity, id)
	}
	return nil
}

func byName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func byTitle(db *gorm.DB) *gorm.DB {
	return db.Order("title ASC")
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
