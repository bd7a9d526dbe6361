// internal/services/property_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: mockDB,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

// searchStatement renders the filter set to SQL without touching the
// database.
func searchStatement(t *testing.T, db *gorm.DB, params PropertySearchParams) *gorm.Statement {
	t.Helper()

	svc := NewPropertyService(db)
	query := svc.buildSearchQuery(params)
	query = utils.ApplySort(query, params.PaginationParams, propertySortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var properties []models.Property
	tx := query.Session(&gorm.Session{DryRun: true}).Find(&properties)
	require.NoError(t, tx.Error)
	return tx.Statement
}

func defaultParams() PropertySearchParams {
	return PropertySearchParams{
		PaginationParams: utils.PaginationParams{
			Page:  1,
			Limit: 12,
			Sort:  "createdAt",
			Order: "desc",
		},
	}
}

func TestSearchAlwaysScopedToActive(t *testing.T) {
	db, _ := newMockDB(t)

	stmt := searchStatement(t, db, defaultParams())

	assert.Contains(t, stmt.SQL.String(), "status = $")
	assert.Contains(t, stmt.Vars, interface{}(models.PropertyStatusActive))
}

func TestSearchFreeTextMatchesThreeFields(t *testing.T) {
	db, _ := newMockDB(t)

	params := defaultParams()
	params.Search = "Sea View"

	stmt := searchStatement(t, db, params)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "LOWER(title) LIKE $")
	assert.Contains(t, sql, "LOWER(description) LIKE $")
	assert.Contains(t, sql, "LOWER(location) LIKE $")
	assert.Contains(t, stmt.Vars, interface{}("%sea view%"))
}

func TestSearchPriceBoundsInRupees(t *testing.T) {
	db, _ := newMockDB(t)

	minPrice := utils.CroreToRupees(1)
	maxPrice := utils.CroreToRupees(2.5)

	params := defaultParams()
	params.MinPrice = &minPrice
	params.MaxPrice = &maxPrice

	stmt := searchStatement(t, db, params)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "price >= $")
	assert.Contains(t, sql, "price <= $")
	assert.Contains(t, stmt.Vars, interface{}(int64(10_000_000)))
	assert.Contains(t, stmt.Vars, interface{}(int64(25_000_000)))
}

func TestSearchBedroomsIsMinimumNotExact(t *testing.T) {
	db, _ := newMockDB(t)

	bedrooms := 3
	params := defaultParams()
	params.Bedrooms = &bedrooms

	stmt := searchStatement(t, db, params)

	assert.Contains(t, stmt.SQL.String(), "bedrooms >= $")
	assert.NotContains(t, stmt.SQL.String(), "bedrooms = $")
}

func TestSearchAmenitiesUsesOverlap(t *testing.T) {
	db, _ := newMockDB(t)

	params := defaultParams()
	params.Amenities = []string{"pool", "gym"}

	stmt := searchStatement(t, db, params)

	assert.Contains(t, stmt.SQL.String(), "amenities && $")
}

func TestSearchSortAndPagination(t *testing.T) {
	db, _ := newMockDB(t)

	params := defaultParams()
	params.Page = 3
	params.Limit = 12
	params.Sort = "price"
	params.Order = "asc"

	stmt := searchStatement(t, db, params)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "ORDER BY price asc")
	assert.Contains(t, stmt.Vars, interface{}(12)) // limit
	assert.Contains(t, stmt.Vars, interface{}(24)) // offset = (3-1)*12
}

func TestSearchUnknownSortFallsBackToCreatedAt(t *testing.T) {
	db, _ := newMockDB(t)

	params := defaultParams()
	params.Sort = "price; DROP TABLE properties"

	stmt := searchStatement(t, db, params)

	assert.Contains(t, stmt.SQL.String(), "ORDER BY created_at desc")
	assert.NotContains(t, stmt.SQL.String(), "DROP TABLE")
}

func TestSearchPropertiesReturnsTotalsForOutOfRangePage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price"}))

	params := defaultParams()
	params.Page = 99

	svc := NewPropertyService(db)
	properties, total, err := svc.SearchProperties(params)

	require.NoError(t, err)
	assert.Empty(t, properties)
	assert.Equal(t, int64(25), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPropertiesPreloadsOwner(t *testing.T) {
	db, mock := newMockDB(t)

	propertyID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "owner_id"}).
			AddRow(propertyID.String(), "Sea View Apartment", int64(12_500_000), ownerID.String()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(ownerID.String(), "Asha Mehta", "asha@example.com"))

	svc := NewPropertyService(db)
	properties, total, err := svc.SearchProperties(defaultParams())

	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Sea View Apartment", properties[0].Title)
	assert.Equal(t, "Asha Mehta", properties[0].Owner.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropertyNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnError(gorm.ErrRecordNotFound)

	svc := NewPropertyService(db)
	_, err := svc.GetProperty(uuid.New(), nil)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func propertyRow(propertyID, ownerID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "owner_id", "status"}).
		AddRow(propertyID.String(), "Sea View Apartment", ownerID.String(), "active")
}

func TestUpdatePropertyRejectsNonOwner(t *testing.T) {
	db, mock := newMockDB(t)

	propertyID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(propertyRow(propertyID, ownerID))

	title := "Renamed listing"
	svc := NewPropertyService(db)
	_, err := svc.UpdateProperty(propertyID, uuid.New(), false, &UpdatePropertyRequest{Title: &title})

	assert.ErrorIs(t, err, ErrNotPropertyOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePropertyAllowsAdmin(t *testing.T) {
	db, mock := newMockDB(t)

	propertyID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(propertyRow(propertyID, ownerID))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	title := "Renamed listing"
	svc := NewPropertyService(db)
	_, err := svc.UpdateProperty(propertyID, uuid.New(), true, &UpdatePropertyRequest{Title: &title})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePropertyRejectsNonOwner(t *testing.T) {
	db, mock := newMockDB(t)

	propertyID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(propertyRow(propertyID, ownerID))

	svc := NewPropertyService(db)
	err := svc.DeleteProperty(propertyID, uuid.New(), false)

	assert.ErrorIs(t, err, ErrNotPropertyOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePropertyAllowsOwner(t *testing.T) {
	db, mock := newMockDB(t)

	propertyID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(propertyRow(propertyID, ownerID))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "properties" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewPropertyService(db)
	err := svc.DeleteProperty(propertyID, ownerID, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeaturedLimitClampedToMax(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WithArgs(true, models.PropertyStatusActive, utils.MaxLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewPropertyService(db)
	_, err := svc.GetFeaturedProperties(999)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeaturedLimitDefaultsWhenUnset(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WithArgs(true, models.PropertyStatusActive, 6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewPropertyService(db)
	_, err := svc.GetFeaturedProperties(0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementInquiriesIsAtomic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "properties" SET "inquiries"=inquiries \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := IncrementInquiries(db, uuid.New())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewIncrementUsesSQLExpression(t *testing.T) {
	db, _ := newMockDB(t)

	tx := db.Session(&gorm.Session{DryRun: true, SkipDefaultTransaction: true}).
		Model(&models.Property{}).
		Where("id = ?", uuid.New()).
		UpdateColumn("views", gorm.Expr("views + 1"))

	require.NoError(t, tx.Error)
	assert.True(t, strings.Contains(tx.Statement.SQL.String(), `"views"=views + 1`),
		"got SQL: %s", tx.Statement.SQL.String())
}
