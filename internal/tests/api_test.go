// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saarthi/saarthi-backend/internal/handlers"
	"github.com/saarthi/saarthi-backend/internal/middleware"
	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	mock   sqlmock.Sqlmock
	router *gin.Engine
	userID uuid.UUID
	token  string
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.mock = mock

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	s.Require().NoError(err)

	propertyService := services.NewPropertyService(db)
	favoriteService := services.NewFavoriteService(db)
	interactionService := services.NewInteractionService(db)

	propertyHandler := handlers.NewPropertyHandler(propertyService, nil, interactionService, time.Minute)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	s.router = gin.New()
	api := s.router.Group("/api")
	api.GET("/properties", middleware.OptionalAuth(), propertyHandler.List)
	api.GET("/properties/:id", middleware.OptionalAuth(), propertyHandler.Detail)
	api.PUT("/properties/:id", middleware.AuthRequired(), propertyHandler.Update)
	api.DELETE("/properties/:id", middleware.AuthRequired(), propertyHandler.Delete)
	api.POST("/favorites", middleware.AuthRequired(), favoriteHandler.Add)

	s.userID = uuid.New()
	s.token, err = utils.GenerateJWT(s.userID, "user@example.com", "user", 1)
	s.Require().NoError(err)
}

func (s *APITestSuite) TestListingEnvelopeShape() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/properties?minPrice=1&city=Pune", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))

	s.Equal(true, body["success"])
	s.Equal(float64(0), body["count"])
	s.Equal(float64(0), body["total"])
	s.Equal(float64(0), body["totalPages"])
	s.Equal(float64(1), body["currentPage"])
	s.NotNil(body["data"])
}

func (s *APITestSuite) TestPropertyDetailNotFound() {
	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnError(gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/properties/"+uuid.NewString(), nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(false, body["success"])
}

func (s *APITestSuite) TestUpdatePropertyForbiddenForNonOwner() {
	propertyID := uuid.New()
	ownerID := uuid.New() // not the suite's authenticated user

	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).
			AddRow(propertyID.String(), ownerID.String()))

	body := bytes.NewBufferString(`{"title":"Renamed listing"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/properties/"+propertyID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusForbidden, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestDeletePropertyForbiddenForNonOwner() {
	propertyID := uuid.New()
	ownerID := uuid.New()

	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).
			AddRow(propertyID.String(), ownerID.String()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/properties/"+propertyID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusForbidden, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestSearchIsTrackedForAuthenticatedUsers() {
	// The interaction insert runs on its own goroutine, so expectation
	// order cannot be pinned.
	s.mock.MatchExpectationsInOrder(false)

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "interactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	s.mock.ExpectCommit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/properties?search=villa", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Require().Eventually(func() bool {
		return s.mock.ExpectationsWereMet() == nil
	}, 2*time.Second, 10*time.Millisecond, "interaction insert never arrived")
}

func (s *APITestSuite) TestPropertyDetailInvalidID() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/properties/not-a-uuid", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestAddFavoriteRequiresAuth() {
	body := bytes.NewBufferString(`{"propertyId":"` + uuid.NewString() + `"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/favorites", body)
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestAddFavoriteTwiceConflicts() {
	propertyID := uuid.New()

	s.mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(propertyID.String(), "Sea View Apartment"))
	s.mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "property_id"}).
			AddRow(uuid.NewString(), s.userID.String(), propertyID.String()))

	body := bytes.NewBufferString(`{"propertyId":"` + propertyID.String() + `"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/favorites", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusConflict, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
