// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/properties?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 12, params.Limit)
	assert.Equal(t, "createdAt", params.Sort)
	assert.Equal(t, "desc", params.Order)
	assert.Empty(t, params.Search)
}

func TestGetPaginationParamsClamps(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"page=3&limit=20", 3, 20},
		{"page=0&limit=0", 1, 12},
		{"page=-5&limit=-2", 1, 12},
		{"page=abc&limit=xyz", 1, 12},
		{"limit=200", 1, 50},
		{"limit=50", 1, 50},
	}

	for _, tt := range tests {
		params := paramsForQuery(t, tt.query)
		assert.Equal(t, tt.wantPage, params.Page, "query %q", tt.query)
		assert.Equal(t, tt.wantLimit, params.Limit, "query %q", tt.query)
	}
}

func TestGetPaginationParamsOrderFallback(t *testing.T) {
	assert.Equal(t, "asc", paramsForQuery(t, "order=asc").Order)
	assert.Equal(t, "desc", paramsForQuery(t, "order=desc").Order)
	assert.Equal(t, "desc", paramsForQuery(t, "order=sideways").Order)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 1, TotalPages(1, 50))
	assert.Equal(t, 0, TotalPages(0, 12))
}
