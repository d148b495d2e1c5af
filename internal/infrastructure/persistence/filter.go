package persistence

import (
	"fmt"
	"regexp"

	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var safeColumnPattern = regexp.MustCompile(`^[a-z_]+$`)

// applyFilter applies ordering and pagination from a shared.Filter.
// Search handling is repository-specific and applied by callers.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" || !safeColumnPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if filter.OrderDir == "asc" {
		orderDir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

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
