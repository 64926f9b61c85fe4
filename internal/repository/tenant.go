package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // API field name
	Order SortOrder // asc or desc
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds an ORDER BY clause from a whitelist of API field names.
// Unknown fields fall back to defaultColumn.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}

	return column + " " + order
}

// ApplyLabFilter scopes a query to the request's effective lab.
// A super admin without a selected lab sees every lab.
func ApplyLabFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	return ApplyLabFilterWithColumn(ctx, query, "lab_id")
}

// ApplyLabFilterWithColumn applies the lab filter to a qualified or renamed column
func ApplyLabFilterWithColumn(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	labID := auth.GetEffectiveLabID(ctx)
	if labID != nil {
		return query.Where(columnName+" = ?", *labID)
	}
	return query
}

// HasLabAccess reports whether a record of the given lab is visible to the request
func HasLabAccess(ctx context.Context, recordLabID uuid.UUID) bool {
	labID := auth.GetEffectiveLabID(ctx)
	if labID == nil {
		return true
	}
	return *labID == recordLabID
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
