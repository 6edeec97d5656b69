package services

import (
	"context"
	"testing"
	"time"

	"transferhub/internal/domain/models"
	"transferhub/internal/kvstore"
	"transferhub/internal/utils"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, subject)
	return nil
}

func reminderFixture(now time.Time, bookings []models.Booking, payments map[int64]models.Payment) (*ReminderService, *recordingMailer) {
	mailer := &recordingMailer{}
	svc := &ReminderService{
		Store:  kvstore.NewMemory(),
		Mailer: mailer,
		Now:    func() time.Time { return now },
		Sleep:  func(time.Duration) {},
		FetchBookings: func(int64) ([]models.Booking, error) {
			return bookings, nil
		},
		FetchPayment: func(id int64) (models.Payment, error) {
			return payments[id], nil
		},
	}
	return svc, mailer
}

func approvedBooking(id int64, serviceAt time.Time) models.Booking {
	return models.Booking{
		ID:             id,
		Status:         "approved",
		PickupLocation: "Airport",
		DropLocation:   "Harbour",
		BookingDate:    utils.FormatDate(serviceAt),
		BookingTime:    serviceAt.Format("15:04"),
	}
}

func TestReminderSentOncePerWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	booking := approvedBooking(41, now.Add(20*time.Hour))
	payments := map[int64]models.Payment{41: {ID: 7, BookingID: 41, Status: "completed"}}

	svc, mailer := reminderFixture(now, []models.Booking{booking}, payments)

	sent, err := svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if sent != 1 || len(mailer.sent) != 1 {
		t.Fatalf("expected one reminder, got sent=%d mails=%d", sent, len(mailer.sent))
	}

	// Within the six hour window nothing goes out.
	svc.Now = func() time.Time { return now.Add(2 * time.Hour) }
	sent, err = svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sent != 0 || len(mailer.sent) != 1 {
		t.Fatalf("expected no duplicate inside window, got sent=%d mails=%d", sent, len(mailer.sent))
	}

	// Past the window the booking becomes eligible again.
	svc.Now = func() time.Time { return now.Add(7 * time.Hour) }
	sent, err = svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if sent != 1 || len(mailer.sent) != 2 {
		t.Fatalf("expected a second reminder after window, got sent=%d mails=%d", sent, len(mailer.sent))
	}
}

func TestReminderSkipsIneligibleBookings(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	withDriver := approvedBooking(2, now.Add(5*time.Hour))
	withDriver.DriverID = 99

	pending := approvedBooking(3, now.Add(5*time.Hour))
	pending.Status = "pending"

	farOut := approvedBooking(4, now.Add(30*time.Hour))
	unpaid := approvedBooking(5, now.Add(5*time.Hour))
	past := approvedBooking(6, now.Add(-2*time.Hour))

	payments := map[int64]models.Payment{
		2: {ID: 1, Status: "completed"},
		3: {ID: 2, Status: "completed"},
		4: {ID: 3, Status: "successful"},
		5: {ID: 4, Status: "pending"},
		6: {ID: 5, Status: "completed"},
	}

	svc, mailer := reminderFixture(now,
		[]models.Booking{withDriver, pending, farOut, unpaid, past}, payments)

	sent, err := svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 0 || len(mailer.sent) != 0 {
		t.Fatalf("expected no reminders, got sent=%d mails=%d", sent, len(mailer.sent))
	}
}

func TestReminderBatchesWithDelay(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	var bookings []models.Booking
	payments := map[int64]models.Payment{}
	for i := int64(1); i <= 5; i++ {
		bookings = append(bookings, approvedBooking(i, now.Add(10*time.Hour)))
		payments[i] = models.Payment{ID: i, BookingID: i, Status: "completed"}
	}

	svc, mailer := reminderFixture(now, bookings, payments)

	var pauses []time.Duration
	svc.Sleep = func(d time.Duration) { pauses = append(pauses, d) }

	sent, err := svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 5 || len(mailer.sent) != 5 {
		t.Fatalf("expected all five sent, got sent=%d mails=%d", sent, len(mailer.sent))
	}

	// Five eligible bookings form three batches, so two pauses.
	if len(pauses) != 2 {
		t.Fatalf("expected 2 pauses, got %d", len(pauses))
	}
	for _, d := range pauses {
		if d != time.Second {
			t.Fatalf("expected 1s pause, got %s", d)
		}
	}
}

func TestReminderInFlightGuard(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	booking := approvedBooking(8, now.Add(3*time.Hour))
	payments := map[int64]models.Payment{8: {ID: 1, Status: "completed"}}

	svc, mailer := reminderFixture(now, []models.Booking{booking}, payments)

	if !svc.tryAcquire(8) {
		t.Fatal("first acquire should succeed")
	}

	sent, err := svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 0 || len(mailer.sent) != 0 {
		t.Fatalf("expected in-flight booking to be skipped, got sent=%d mails=%d", sent, len(mailer.sent))
	}

	svc.release(8)

	sent, err = svc.RunForSupplier(context.Background(), 3, "ops@example.com")
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected reminder after release, got sent=%d", sent)
	}
}
