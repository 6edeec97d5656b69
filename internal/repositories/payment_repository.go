package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	intconfig "transferhub/internal/config"
	intdb "transferhub/internal/db"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PaymentRepository) table() string {
	return "payments"
}

const paymentSelect = `
	SELECT id,
	       COALESCE(booking_id,0),
	       COALESCE(status,'pending'),
	       COALESCE(method,''),
	       COALESCE(amount,0),
	       COALESCE(currency,''),
	       COALESCE(paid_at,''),
	       COALESCE(reference,'')
	FROM payments`

// GetByBookingID returns the payment linked to a booking. A booking
// without a payment is not an error; the zero value is returned.
func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "booking_id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.Payment{}, domain.InternalError{Msg: "db not available"}
	}

	var p models.Payment
	err := db.QueryRow(paymentSelect+" WHERE booking_id=? LIMIT 1", bookingID).Scan(
		&p.ID,
		&p.BookingID,
		&p.Status,
		&p.Method,
		&p.Amount,
		&p.Currency,
		&p.PaidAt,
		&p.Reference,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, nil
	}
	return p, err
}

// UpdateStatusByBookingID sets the payment status for a booking.
func (r PaymentRepository) UpdateStatusByBookingID(bookingID int64, status domain.PaymentStatus) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE payments SET status=? WHERE booking_id=?`, string(status), bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// CreateOrUpdate upserts a payment row by booking_id using key presence:
// only fields present in the raw payload are written, and only when the
// column exists in the live schema.
func (r PaymentRepository) CreateOrUpdate(bookingID int64, raw json.RawMessage) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "must be positive"}
	}
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return domain.InternalError{Msg: "payments table not found"}
	}

	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	fieldString := func(key string) string {
		if v, ok := payload[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	fieldFloat := func(key string) float64 {
		if v, ok := payload[key]; ok {
			if f, ok := v.(float64); ok {
				return f
			}
		}
		return 0
	}

	columns := []string{}
	values := []any{}

	set := func(present bool, col string, val any) {
		if present && intdb.HasColumn(db, table, col) {
			columns = append(columns, col+"=?")
			values = append(values, val)
		}
	}

	set(payload["status"] != nil, "status", strings.ToLower(fieldString("status")))
	set(payload["method"] != nil, "method", fieldString("method"))
	set(payload["amount"] != nil, "amount", fieldFloat("amount"))
	set(payload["currency"] != nil, "currency", fieldString("currency"))
	set(payload["paid_at"] != nil, "paid_at", fieldString("paid_at"))
	set(payload["reference"] != nil, "reference", fieldString("reference"))

	var existingID int64
	_ = db.QueryRow(`SELECT id FROM `+table+` WHERE booking_id=? LIMIT 1`, bookingID).Scan(&existingID)

	if existingID == 0 {
		cols := []string{"booking_id"}
		vals := []any{bookingID}
		for _, part := range columns {
			cols = append(cols, strings.Split(part, "=")[0])
		}
		vals = append(vals, values...)
		placeholders := make([]string, len(cols))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		_, err := db.Exec(`INSERT INTO `+table+` (`+strings.Join(cols, ",")+`) VALUES (`+strings.Join(placeholders, ",")+`)`, vals...)
		return err
	}

	if len(columns) == 0 {
		return nil
	}
	values = append(values, existingID)
	_, err := db.Exec(`UPDATE `+table+` SET `+strings.Join(columns, ",")+` WHERE id=?`, values...)
	return err
}
