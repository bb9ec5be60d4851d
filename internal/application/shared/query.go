package shared

import (
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// ListQuery carries the paging and ordering parameters common to list endpoints
type ListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter applies defaults and the page size ceiling
func (q ListQuery) ToFilter() shared.Filter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = min(q.PageSize, shared.MaxPageSize)
	}
	f.Search = strings.TrimSpace(q.Search)
	f.OrderBy = q.OrderBy
	f.OrderDir = q.OrderDir
	return f
}

// ParseBool reads a boolean query value. true, 1 and yes are true in any case.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// RequiredMessage is the message recorded for a missing field
const RequiredMessage = "This field is required."

// MissingFields reports, in order, the named fields whose present flag is false
func MissingFields(fields ...Field) error {
	var fe shared.FieldErrors
	for _, f := range fields {
		if !f.Present {
			fe.Add(f.Name, RequiredMessage)
		}
	}
	return fe.Err()
}

// Field pairs a payload key with whether it was supplied
type Field struct {
	Name    string
	Present bool
}

// F is shorthand for building a Field
func F(name string, present bool) Field {
	return Field{Name: name, Present: present}
}
