package services

import (
	"strconv"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"
)

type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

// ChangeStatusByBookingID updates the payment linked to a booking. The
// booking must exist; the payment row is created lazily when the gateway
// callback arrives before the record does.
func (s PaymentService) ChangeStatusByBookingID(bookingID int64, raw string) (models.Payment, error) {
	status, ok := domain.ParsePaymentStatus(raw)
	if !ok {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "unknown status " + strconv.Quote(raw)}
	}

	if _, err := s.BookingRepo.GetByID(bookingID); err != nil {
		return models.Payment{}, err
	}

	existing, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return models.Payment{}, err
	}

	if existing.ID == 0 {
		payload := []byte(`{"status":"` + string(status) + `"}`)
		if err := s.PaymentRepo.CreateOrUpdate(bookingID, payload); err != nil {
			return models.Payment{}, err
		}
	} else if err := s.PaymentRepo.UpdateStatusByBookingID(bookingID, status); err != nil {
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "change_status",
		"booking_id="+strconv.FormatInt(bookingID, 10)+" status="+string(status))

	return s.PaymentRepo.GetByBookingID(bookingID)
}
