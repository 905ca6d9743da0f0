package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/shared"
)

// applyFilter applies exact-match filters, ordering and pagination.
// searchColumns, when given, are matched with ILIKE against filter.Search.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumns...)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// applyFilterWithoutPagination applies everything except offset/limit,
// for use by Count.
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	for key, value := range filter.Filters {
		if !isSafeColumn(key) {
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", col))
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	if filter.OrderBy != "" && isSafeColumn(filter.OrderBy) {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}

	return query
}

// isSafeColumn allows only plain identifiers as column names, since filter
// keys and order columns end up in the SQL text.
func isSafeColumn(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
