// internal/services/booking_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saarthi/saarthi-backend/internal/models"
)

type bookingFixture struct {
	bookingID  uuid.UUID
	visitorID  uuid.UUID
	ownerID    uuid.UUID
	propertyID uuid.UUID
}

func newBookingFixture() bookingFixture {
	return bookingFixture{
		bookingID:  uuid.New(),
		visitorID:  uuid.New(),
		ownerID:    uuid.New(),
		propertyID: uuid.New(),
	}
}

// expectBookingLoad mocks the booking fetch with its Property and User
// preloads, in the order gorm issues them.
func expectBookingLoad(mock sqlmock.Sqlmock, f bookingFixture) {
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "property_id", "status"}).
			AddRow(f.bookingID.String(), f.visitorID.String(), f.propertyID.String(), "pending"))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).
			AddRow(f.propertyID.String(), f.ownerID.String()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(f.visitorID.String(), "Ravi Kumar"))
}

func expectStatusUpdate(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestVisitorMayCancelOwnBooking(t *testing.T) {
	db, mock := newMockDB(t)
	f := newBookingFixture()

	expectBookingLoad(mock, f)
	expectStatusUpdate(mock)

	svc := NewBookingService(db, nil)
	booking, err := svc.UpdateBookingStatus(f.bookingID, f.visitorID, false, models.BookingStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitorMayNotConfirmOwnBooking(t *testing.T) {
	db, mock := newMockDB(t)
	f := newBookingFixture()

	expectBookingLoad(mock, f)

	svc := NewBookingService(db, nil)
	_, err := svc.UpdateBookingStatus(f.bookingID, f.visitorID, false, models.BookingStatusConfirmed)

	assert.ErrorIs(t, err, ErrNotBookingActor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerMayConfirmBooking(t *testing.T) {
	db, mock := newMockDB(t)
	f := newBookingFixture()

	expectBookingLoad(mock, f)
	expectStatusUpdate(mock)

	svc := NewBookingService(db, nil)
	booking, err := svc.UpdateBookingStatus(f.bookingID, f.ownerID, false, models.BookingStatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStrangerMayNotTouchBooking(t *testing.T) {
	db, mock := newMockDB(t)
	f := newBookingFixture()

	expectBookingLoad(mock, f)

	svc := NewBookingService(db, nil)
	_, err := svc.UpdateBookingStatus(f.bookingID, uuid.New(), false, models.BookingStatusCancelled)

	assert.ErrorIs(t, err, ErrNotBookingActor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminMayCompleteAnyBooking(t *testing.T) {
	db, mock := newMockDB(t)
	f := newBookingFixture()

	expectBookingLoad(mock, f)
	expectStatusUpdate(mock)

	svc := NewBookingService(db, nil)
	booking, err := svc.UpdateBookingStatus(f.bookingID, uuid.New(), true, models.BookingStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingStatusMustBeALifecycleState(t *testing.T) {
	db, _ := newMockDB(t)
	f := newBookingFixture()

	svc := NewBookingService(db, nil)
	_, err := svc.UpdateBookingStatus(f.bookingID, f.visitorID, false, models.BookingStatusPending)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}
