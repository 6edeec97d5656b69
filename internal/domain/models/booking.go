package models

// Booking is a requested ground-transport trip with a lifecycle status.
// Date fields stay strings in "2006-01-02" / "2006-01-02 15:04:05" form;
// callers parse on demand.
type Booking struct {
	ID             int64   `json:"id"`
	AgentID        int64   `json:"agent_id"`
	SupplierID     int64   `json:"supplier_id"`
	DriverID       int64   `json:"driver_id,omitempty"`
	PickupLocation string  `json:"pickup_location"`
	DropLocation   string  `json:"drop_location"`
	BookingDate    string  `json:"booking_date"`
	BookingTime    string  `json:"booking_time"`
	Status         string  `json:"status"`
	PassengerName  string  `json:"passenger_name"`
	PassengerEmail string  `json:"passenger_email"`
	PassengerPhone string  `json:"passenger_phone"`
	PassengerCount int     `json:"passenger_count"`
	VehicleID      int64   `json:"vehicle_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	BookedAt       string  `json:"booked_at"`
	CompletedAt    string  `json:"completed_at,omitempty"`
}

// BookingStatusUpdate carries a status change request for a booking.
type BookingStatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
