package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelect = `
	SELECT id,
	       COALESCE(agent_id,0),
	       COALESCE(supplier_id,0),
	       COALESCE(driver_id,0),
	       COALESCE(pickup_location,''),
	       COALESCE(drop_location,''),
	       COALESCE(booking_date,''),
	       COALESCE(booking_time,''),
	       COALESCE(status,'pending'),
	       COALESCE(passenger_name,''),
	       COALESCE(passenger_email,''),
	       COALESCE(passenger_phone,''),
	       COALESCE(passenger_count,0),
	       COALESCE(vehicle_id,0),
	       COALESCE(amount,0),
	       COALESCE(currency,''),
	       COALESCE(booked_at,''),
	       COALESCE(completed_at,'')
	FROM bookings`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.AgentID,
		&b.SupplierID,
		&b.DriverID,
		&b.PickupLocation,
		&b.DropLocation,
		&b.BookingDate,
		&b.BookingTime,
		&b.Status,
		&b.PassengerName,
		&b.PassengerEmail,
		&b.PassengerPhone,
		&b.PassengerCount,
		&b.VehicleID,
		&b.Amount,
		&b.Currency,
		&b.BookedAt,
		&b.CompletedAt,
	)
	return b, err
}

func (r BookingRepository) list(where string, args ...any) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(bookingSelect+where+" ORDER BY id DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListAll returns every booking for the admin view.
func (r BookingRepository) ListAll() ([]models.Booking, error) {
	return r.list("")
}

func (r BookingRepository) ListByAgentID(agentID int64) ([]models.Booking, error) {
	if agentID <= 0 {
		return nil, domain.ValidationError{Field: "agent_id", Msg: "must be positive"}
	}
	return r.list(" WHERE agent_id=?", agentID)
}

func (r BookingRepository) ListBySupplierID(supplierID int64) ([]models.Booking, error) {
	if supplierID <= 0 {
		return nil, domain.ValidationError{Field: "supplier_id", Msg: "must be positive"}
	}
	return r.list(" WHERE supplier_id=?", supplierID)
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "db not available"}
	}

	b, err := scanBooking(db.QueryRow(bookingSelect+" WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// UpdateStatus writes the new lifecycle status; completed bookings also
// record completed_at.
func (r BookingRepository) UpdateStatus(id int64, status domain.BookingStatus) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	var res sql.Result
	var err error
	if status == domain.BookingCompleted {
		res, err = db.Exec(`UPDATE bookings SET status=?, completed_at=? WHERE id=?`,
			string(status), utils.FormatDateTime(utils.NowUTC()), id)
	} else {
		res, err = db.Exec(`UPDATE bookings SET status=? WHERE id=?`, string(status), id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// AssignDriver sets driver_id on an approved booking.
func (r BookingRepository) AssignDriver(id, driverID int64) error {
	if driverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE bookings SET driver_id=? WHERE id=?`, driverID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// PendingDriverAssignment returns approved bookings without a driver for
// one supplier; the reminder service filters further by service time and
// payment state.
func (r BookingRepository) PendingDriverAssignment(supplierID int64) ([]models.Booking, error) {
	if supplierID <= 0 {
		return nil, fmt.Errorf("supplier_id must be positive")
	}
	return r.list(" WHERE supplier_id=? AND status='approved' AND COALESCE(driver_id,0)=0", supplierID)
}
