package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Contains restricts q to rows where any of columns contains keyword.
// Matching is a case-sensitive substring test on both dialects; LIKE is
// avoided because SQLite compares ASCII case-insensitively.
func Contains(q *gorm.DB, keyword string, columns ...string) *gorm.DB {
	if keyword == "" || len(columns) == 0 {
		return q
	}

	fn := "strpos(%s, ?) > 0"
	if Dialect(q) == DialectSQLite {
		fn = "instr(%s, ?) > 0"
	}

	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		clauses[i] = fmt.Sprintf(fn, column)
		args[i] = keyword
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
