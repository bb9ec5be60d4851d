package persistence

import (
	"errors"
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the domain sentinel
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// nextKey allocates the next prefixed key for table.column
func nextKey(db *gorm.DB, table, column, prefix string, padding int) (string, error) {
	var existing []string
	if err := db.Table(table).Where(column+" LIKE ?", prefix+"%").Pluck(column, &existing).Error; err != nil {
		return "", err
	}
	return shared.NextPrefixedID(prefix, padding, existing), nil
}

// exists reports whether any row of table matches the condition
func exists(db *gorm.DB, table, cond string, args ...any) (bool, error) {
	var count int64
	if err := db.Table(table).Where(cond, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likeEscape is appended to every LIKE built from likePattern
const likeEscape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a case-insensitive contains pattern for
// LOWER(col) LIKE ? ESCAPE '\'. Wildcards in s match literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// normalizeName lower-cases and trims a name for case-insensitive equality
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
