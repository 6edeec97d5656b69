package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transferhub/internal/domain"
)

var bookingColumns = []string{
	"id", "agent_id", "supplier_id", "driver_id",
	"pickup_location", "drop_location", "booking_date", "booking_time",
	"status", "passenger_name", "passenger_email", "passenger_phone",
	"passenger_count", "vehicle_id", "amount", "currency",
	"booked_at", "completed_at",
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).
		AddRow(2, 1, 3, 0, "Airport", "Harbour", "2025-03-11", "14:00",
			"approved", "Ann Lee", "ann@example.com", "", 2, 5, 120.0, "EUR",
			"2025-03-01 10:00:00", "").
		AddRow(1, 1, 3, 9, "Station", "Hotel", "2025-03-12", "09:30",
			"pending", "Bob Roy", "bob@example.com", "", 1, 5, 60.0, "EUR",
			"2025-03-02 11:00:00", "")
}

func TestListByAgentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE agent_id=\\? ORDER BY id DESC").
		WithArgs(int64(1)).
		WillReturnRows(bookingRows())

	got, err := BookingRepository{DB: db}.ListByAgentID(1)
	if err != nil {
		t.Fatalf("ListByAgentID: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[0].PickupLocation != "Airport" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByAgentIDRejectsBadID(t *testing.T) {
	if _, err := (BookingRepository{}).ListByAgentID(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id=\\?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	if _, err := (BookingRepository{DB: db}).GetByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusCompletedSetsTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status=\\?, completed_at=\\? WHERE id=\\?").
		WithArgs("completed", sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (BookingRepository{DB: db}).UpdateStatus(2, domain.BookingCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAssignDriverMissingBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET driver_id=\\? WHERE id=\\?").
		WithArgs(int64(9), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (BookingRepository{DB: db}).AssignDriver(404, 9); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPendingDriverAssignmentFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE supplier_id=\\? AND status='approved' AND COALESCE\\(driver_id,0\\)=0").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(2, 1, 3, 0, "Airport", "Harbour", "2025-03-11", "14:00",
				"approved", "Ann Lee", "ann@example.com", "", 2, 5, 120.0, "EUR",
				"2025-03-01 10:00:00", ""))

	got, err := BookingRepository{DB: db}.PendingDriverAssignment(3)
	if err != nil {
		t.Fatalf("PendingDriverAssignment: %v", err)
	}
	if len(got) != 1 || got[0].DriverID != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
