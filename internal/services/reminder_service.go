package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/kvstore"
	"transferhub/internal/metrics"
	"transferhub/internal/notify"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"
)

const (
	reminderWindow     = 6 * time.Hour
	reminderHorizon    = 24 * time.Hour
	reminderBatchSize  = 2
	reminderBatchDelay = 1 * time.Second
)

// ReminderService nudges suppliers about approved, paid bookings whose
// service time is near and which still have no driver. Dispatch happens
// in small batches with a fixed delay, a crude self-imposed rate limit.
type ReminderService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	Store       kvstore.Store
	Mailer      notify.Mailer
	RequestID   string

	// Now and Sleep override the clock in tests.
	Now   func() time.Time
	Sleep func(time.Duration)

	// FetchBookings and FetchPayment override repository access in tests.
	FetchBookings func(supplierID int64) ([]models.Booking, error)
	FetchPayment  func(bookingID int64) (models.Payment, error)

	mu       sync.Mutex
	inFlight map[int64]bool
}

func (s *ReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ReminderService) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (s *ReminderService) payment(bookingID int64) (models.Payment, error) {
	if s.FetchPayment != nil {
		return s.FetchPayment(bookingID)
	}
	return s.PaymentRepo.GetByBookingID(bookingID)
}

func reminderKey(bookingID int64) string {
	return "reminder:booking:" + strconv.FormatInt(bookingID, 10)
}

// Eligible applies the static part of the reminder predicate: approved,
// no driver, paid, and service time inside the next 24 hours.
func (s *ReminderService) Eligible(b models.Booking, p models.Payment) bool {
	status, _ := domain.ParseBookingStatus(b.Status)
	if status != domain.BookingApproved || b.DriverID > 0 {
		return false
	}

	pay, _ := domain.ParsePaymentStatus(p.Status)
	if !pay.IsPaid() {
		return false
	}

	service, err := utils.ServiceTime(b.BookingDate, b.BookingTime)
	if err != nil {
		return false
	}
	until := service.Sub(s.now())
	return until >= 0 && until <= reminderHorizon
}

// remindedRecently consults the durable per-booking last-sent timestamp.
func (s *ReminderService) remindedRecently(ctx context.Context, bookingID int64) bool {
	raw, err := s.Store.Get(ctx, reminderKey(bookingID))
	if err != nil {
		return false
	}
	sent, err := utils.ParseDateTime(raw)
	if err != nil {
		return false
	}
	return s.now().Sub(sent) < reminderWindow
}

// tryAcquire guards against the same booking being processed twice by
// overlapping runs.
func (s *ReminderService) tryAcquire(bookingID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		s.inFlight = map[int64]bool{}
	}
	if s.inFlight[bookingID] {
		return false
	}
	s.inFlight[bookingID] = true
	return true
}

func (s *ReminderService) release(bookingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, bookingID)
}

// RunForSupplier scans the supplier's unassigned bookings and dispatches
// reminder emails in batches of two with a one-second gap. Returns how
// many reminders were sent. There is no retry; a failed send simply stays
// unrecorded and becomes eligible again on the next run.
func (s *ReminderService) RunForSupplier(ctx context.Context, supplierID int64, recipient string) (int, error) {
	fetch := s.FetchBookings
	if fetch == nil {
		fetch = s.BookingRepo.PendingDriverAssignment
	}
	bookings, err := fetch(supplierID)
	if err != nil {
		return 0, err
	}

	eligible := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		p, err := s.payment(b.ID)
		if err != nil {
			continue
		}
		if !s.Eligible(b, p) {
			continue
		}
		if s.remindedRecently(ctx, b.ID) {
			continue
		}
		eligible = append(eligible, b)
	}

	sent := 0
	for start := 0; start < len(eligible); start += reminderBatchSize {
		end := start + reminderBatchSize
		if end > len(eligible) {
			end = len(eligible)
		}

		for _, b := range eligible[start:end] {
			if !s.tryAcquire(b.ID) {
				continue
			}
			err := s.send(recipient, b)
			metrics.RecordReminder(err)
			if err == nil {
				_ = s.Store.Set(ctx, reminderKey(b.ID), utils.FormatDateTime(s.now()))
				sent++
			}
			s.release(b.ID)
		}

		if end < len(eligible) {
			s.sleep(reminderBatchDelay)
		}
	}

	utils.LogEvent(s.RequestID, "reminder", "run",
		fmt.Sprintf("supplier_id=%d eligible=%d sent=%d", supplierID, len(eligible), sent))
	return sent, nil
}

func (s *ReminderService) send(recipient string, b models.Booking) error {
	subject := fmt.Sprintf("Driver still unassigned for booking #%d", b.ID)
	body := fmt.Sprintf(
		"Booking #%d (%s -> %s) departs at %s %s and has no driver assigned yet. Please assign one.",
		b.ID, b.PickupLocation, b.DropLocation, b.BookingDate, b.BookingTime)
	return s.Mailer.Send(recipient, subject, body)
}
