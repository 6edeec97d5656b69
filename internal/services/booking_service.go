package services

import (
	"strconv"
	"strings"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/listview"
	"transferhub/internal/metrics"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"
)

// BookingService serves the booking tables for all three roles and owns
// the lifecycle transitions.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string

	// FetchBookings overrides repository access in tests.
	FetchBookings func() ([]models.Booking, error)
}

// BookingSchema is the listview binding for booking tables; every role's
// page searches the same fields.
func BookingSchema() listview.Schema[models.Booking] {
	return listview.Schema[models.Booking]{
		TextFields: []string{"pickup_location", "drop_location", "passenger_name", "passenger_email"},
		DateField:  "booking_date",
		Get: func(b models.Booking, key string) (any, bool) {
			if i := strings.LastIndex(key, "."); i >= 0 {
				key = key[i+1:]
			}
			switch key {
			case "id":
				return b.ID, true
			case "pickup_location":
				return b.PickupLocation, true
			case "drop_location":
				return b.DropLocation, true
			case "booking_date":
				return b.BookingDate, true
			case "booking_time":
				return b.BookingTime, true
			case "status":
				return b.Status, true
			case "passenger_name":
				return b.PassengerName, true
			case "passenger_email":
				return b.PassengerEmail, true
			case "passenger_count":
				return b.PassengerCount, true
			case "amount":
				return b.Amount, true
			case "booked_at":
				return b.BookedAt, true
			case "completed_at":
				return b.CompletedAt, true
			case "driver_assigned":
				return b.DriverID > 0, true
			}
			return nil, false
		},
	}
}

// BookingPage is one page of bookings plus the controls the table needs.
type BookingPage = Page[models.Booking]

func (s BookingService) page(fetch func() ([]models.Booking, error), p listview.Params) (BookingPage, error) {
	if s.FetchBookings != nil {
		fetch = s.FetchBookings
	}
	items, err := fetch()
	if err != nil {
		return BookingPage{}, err
	}
	return PageOf(BookingSchema(), items, p), nil
}

func (s BookingService) ListAll(p listview.Params) (BookingPage, error) {
	return s.page(s.BookingRepo.ListAll, p)
}

func (s BookingService) ListByAgent(agentID int64, p listview.Params) (BookingPage, error) {
	return s.page(func() ([]models.Booking, error) {
		return s.BookingRepo.ListByAgentID(agentID)
	}, p)
}

func (s BookingService) ListBySupplier(supplierID int64, p listview.Params) (BookingPage, error) {
	return s.page(func() ([]models.Booking, error) {
		return s.BookingRepo.ListBySupplierID(supplierID)
	}, p)
}

// ChangeStatus moves a booking through its lifecycle; illegal jumps are
// rejected before touching storage.
func (s BookingService) ChangeStatus(bookingID int64, raw string) (models.Booking, error) {
	next, ok := domain.ParseBookingStatus(raw)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + strconv.Quote(raw)}
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	current, _ := domain.ParseBookingStatus(booking.Status)
	if current == next {
		return booking, nil
	}
	if !current.CanTransition(next) {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      "cannot move from " + string(current) + " to " + string(next),
		}
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, next); err != nil {
		return models.Booking{}, err
	}

	metrics.BookingStatusChanges.WithLabelValues(string(next)).Inc()
	utils.LogEvent(s.RequestID, "booking", "change_status",
		"booking_id="+strconv.FormatInt(bookingID, 10)+" status="+string(next))

	return s.BookingRepo.GetByID(bookingID)
}

// AssignDriver attaches a driver to an approved booking.
func (s BookingService) AssignDriver(bookingID, driverID int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	status, _ := domain.ParseBookingStatus(booking.Status)
	if status != domain.BookingApproved {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      "driver can only be assigned to an approved booking",
		}
	}

	if err := s.BookingRepo.AssignDriver(bookingID, driverID); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "assign_driver",
		"booking_id="+strconv.FormatInt(bookingID, 10)+" driver_id="+strconv.FormatInt(driverID, 10))

	return s.BookingRepo.GetByID(bookingID)
}
