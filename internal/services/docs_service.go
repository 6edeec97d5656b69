package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService generates the post-payment voucher and invoice PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string

	// Loader overrides repository access in tests.
	Loader func(int64) (models.Booking, models.Payment, error)
}

func (s DocsService) load(bookingID int64) (models.Booking, models.Payment, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	return booking, payment, nil
}

// GenerateVoucher renders the travel voucher. Only paid bookings get one.
func (s DocsService) GenerateVoucher(bookingID int64) ([]byte, string, error) {
	booking, payment, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}

	status, _ := domain.ParsePaymentStatus(payment.Status)
	if !status.IsPaid() {
		return nil, "", domain.ConflictError{Resource: "voucher", Msg: "payment not settled"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_voucher", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(booking)
}

// GenerateInvoice renders the invoice for a booking's payment.
func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	booking, payment, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if payment.ID == 0 {
		return nil, "", domain.NotFoundError{Resource: "payment"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(booking, payment)
}

func buildVoucherPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Travel Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAVEL VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger     : %s", orDash(b.PassengerName)),
		fmt.Sprintf("Phone         : %s", orDash(b.PassengerPhone)),
		fmt.Sprintf("Passengers    : %d", b.PassengerCount),
		fmt.Sprintf("Route         : %s -> %s", orDash(b.PickupLocation), orDash(b.DropLocation)),
		fmt.Sprintf("Date / Time   : %s %s", orDash(dayPart(b.BookingDate)), orDash(clockPart(b.BookingTime))),
		fmt.Sprintf("Booking Ref   : #%d", b.ID),
		fmt.Sprintf("Voucher Code  : VCH-%d", b.ID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this voucher to the driver at pickup.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("VOUCHER_%d_%s.pdf", b.ID, utils.SafeFilenamePart(b.PassengerName))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(b models.Booking, p models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d", b.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", orDash(b.PassengerName)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", orDash(b.PassengerEmail)))
	pdf.Ln(10)

	desc := fmt.Sprintf("Private transfer %s -> %s (%s %s)",
		orDash(b.PickupLocation), orDash(b.DropLocation),
		orDash(dayPart(b.BookingDate)), orDash(clockPart(b.BookingTime)))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Payment method: "+orDash(p.Method))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Payment status: "+orDash(p.Status))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatAmount(p.Amount, p.Currency))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", b.ID, utils.SafeFilenamePart(b.PassengerName))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func dayPart(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func clockPart(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}
