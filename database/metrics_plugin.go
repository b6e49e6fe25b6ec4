package database

import (
	"time"

	"github.com/wangyukai585/BioAlgoDB/metrics"

	"gorm.io/gorm"
)

const startTimeKey = "bioalgodb:start_time"

// MetricsPlugin times every gorm statement and reports it to prometheus
type MetricsPlugin struct{}

func (MetricsPlugin) Name() string {
	return "bioalgodb:metrics"
}

func (MetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("bioalgodb:before_"+h.operation, startTimer); err != nil {
			return err
		}
		if err := h.after("bioalgodb:after_"+h.operation, recordDuration(h.operation)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordDuration(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		value, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := value.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		metrics.RecordDBOperation(operation, table, start)
	}
}
