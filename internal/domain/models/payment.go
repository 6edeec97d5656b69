package models

// Payment is the financial record linked (at most) 1:1 to a booking.
type Payment struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"booking_id"`
	Status    string  `json:"status"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	PaidAt    string  `json:"paid_at,omitempty"`
	Reference string  `json:"reference,omitempty"`
}
