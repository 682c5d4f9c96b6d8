package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// DateWindow optionally bounds a list by date, both ends inclusive
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

func (w DateWindow) apply(db *gorm.DB, column string) *gorm.DB {
	if w.From != nil {
		db = db.Where(column+" >= ?", *w.From)
	}
	if w.To != nil {
		db = db.Where(column+" <= ?", *w.To)
	}
	return db
}

// order resolves SortBy against the allowed columns, falling back to def
func (q *ListQuery) order(allowed map[string]string, def string) string {
	column, ok := allowed[q.SortBy]
	if !ok {
		return def
	}
	if strings.ToLower(q.SortDir) == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}

func (q *ListQuery) paginate(db *gorm.DB) *gorm.DB {
	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
	}
	return db
}

// likePattern builds a case-insensitive LIKE pattern that works on both postgres and sqlite
func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
