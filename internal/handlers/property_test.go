// internal/handlers/property_test.go
package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saarthi/saarthi-backend/internal/services"
)

func searchParamsForQuery(t *testing.T, query string) services.PropertySearchParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/properties?"+query, nil)
	return parseSearchParams(c)
}

func TestParseSearchParamsPriceInCrore(t *testing.T) {
	params := searchParamsForQuery(t, "minPrice=1&maxPrice=2.5")

	require.NotNil(t, params.MinPrice)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, int64(10_000_000), *params.MinPrice)
	assert.Equal(t, int64(25_000_000), *params.MaxPrice)
}

func TestParseSearchParamsDropsUnparseableValues(t *testing.T) {
	params := searchParamsForQuery(t, "minPrice=cheap&maxPrice=&bedrooms=many&minArea=big")

	assert.Nil(t, params.MinPrice)
	assert.Nil(t, params.MaxPrice)
	assert.Nil(t, params.Bedrooms)
	assert.Nil(t, params.MinArea)
}

func TestParseSearchParamsPassesStringsThrough(t *testing.T) {
	params := searchParamsForQuery(t, "city=Pune&propertyType=villa&furnishing=furnished")

	assert.Equal(t, "Pune", params.City)
	assert.Equal(t, "villa", params.PropertyType)
	assert.Equal(t, "furnished", params.Furnishing)
}

func TestParseSearchParamsAmenitiesRepeatable(t *testing.T) {
	params := searchParamsForQuery(t, "amenities=pool&amenities=gym")

	assert.Equal(t, []string{"pool", "gym"}, params.Amenities)
}

func TestParseSearchParamsAmenitiesCommaSeparated(t *testing.T) {
	params := searchParamsForQuery(t, "amenities=pool,gym,%20lift")

	assert.Equal(t, []string{"pool", "gym", "lift"}, params.Amenities)
}

func TestParseSearchParamsLocationAliasesCity(t *testing.T) {
	assert.Equal(t, "Mumbai", searchParamsForQuery(t, "location=Mumbai").City)
	assert.Equal(t, "Pune", searchParamsForQuery(t, "city=Pune&location=Mumbai").City)
}

func TestParseSearchParamsClampsPagination(t *testing.T) {
	params := searchParamsForQuery(t, "page=-1&limit=500")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 50, params.Limit)
}

func TestParseSearchParamsMissingFiltersStayAbsent(t *testing.T) {
	params := searchParamsForQuery(t, "")

	assert.Nil(t, params.MinPrice)
	assert.Nil(t, params.MaxPrice)
	assert.Nil(t, params.Bedrooms)
	assert.Nil(t, params.MinArea)
	assert.Nil(t, params.MaxArea)
	assert.Empty(t, params.Amenities)
}
