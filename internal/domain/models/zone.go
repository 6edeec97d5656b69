package models

// Zone is a pickup area a supplier serves.
type Zone struct {
	ID         int64   `json:"id"`
	SupplierID int64   `json:"supplier_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RadiusKM   float64 `json:"radius_km"`
}

// Transfer is a priced rule linking a supplier's vehicle to a pickup zone.
type Transfer struct {
	ID        int64   `json:"id"`
	VehicleID int64   `json:"vehicle_id"`
	ZoneID    int64   `json:"zone_id"`
	Price     float64 `json:"price"`
	Tax       float64 `json:"tax"`
	Surcharge float64 `json:"surcharge"`
	Currency  string  `json:"currency"`
	Active    bool    `json:"active"`
}
