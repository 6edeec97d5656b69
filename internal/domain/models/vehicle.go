package models

// Vehicle is a supplier-owned car/van offered for transfers.
type Vehicle struct {
	ID          int64  `json:"id"`
	SupplierID  int64  `json:"supplier_id"`
	BrandID     int64  `json:"brand_id"`
	TypeID      int64  `json:"type_id"`
	ModelID     int64  `json:"model_id"`
	PlateNumber string `json:"plate_number"`
	Seats       int    `json:"seats"`
	LuggageCap  int    `json:"luggage_capacity"`
	Active      bool   `json:"active"`
}

// VehicleBrand, VehicleType and VehicleModel are flat lookup records
// managed by suppliers.
type VehicleBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type VehicleType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type VehicleModel struct {
	ID      int64  `json:"id"`
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
}
