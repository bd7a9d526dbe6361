// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 50
)

type PaginationParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
	Search string `json:"search"`
}

// GetPaginationParams reads page/limit/sort/order from the query string.
// Malformed values fall back to defaults rather than failing the request;
// limit is capped to protect the database from unbounded scans.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	sort := c.DefaultQuery("sort", "createdAt")
	order := c.DefaultQuery("order", "desc")
	search := c.Query("search")

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Order:  order,
		Search: search,
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.Limit
	return db.Offset(offset).Limit(params.Limit)
}

// ApplySort maps the API sort name onto a column through the allowed map;
// unknown names fall back to created_at.
func ApplySort(db *gorm.DB, params PaginationParams, allowedSortFields map[string]string) *gorm.DB {
	column, ok := allowedSortFields[params.Sort]
	if !ok {
		column = "created_at"
	}

	return db.Order(column + " " + params.Order)
}

// TotalPages is ceil(total/limit); an empty result set has zero pages, not one.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
