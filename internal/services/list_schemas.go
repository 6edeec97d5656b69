package services

import (
	"strings"

	"transferhub/internal/domain/models"
	"transferhub/internal/listview"
)

// Page is one page of table rows plus the page-button window the
// table controls need.
type Page[T any] struct {
	listview.Result[T]
	Window listview.PageWindow `json:"window"`
}

// PageOf runs the list pipeline over the fetched rows and attaches the
// window; every table endpoint returns this shape.
func PageOf[T any](schema listview.Schema[T], items []T, p listview.Params) Page[T] {
	res := schema.Query(items, p)
	return Page[T]{
		Result: res,
		Window: listview.Window(res.TotalPages, res.Page),
	}
}

func baseKey(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}

// activeStatus maps the Active flag onto the shared status filter
// vocabulary.
func activeStatus(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// VehicleSchema is the listview binding for the supplier vehicle table.
// The status filter matches "active" / "inactive".
func VehicleSchema() listview.Schema[models.Vehicle] {
	return listview.Schema[models.Vehicle]{
		TextFields: []string{"plate_number"},
		Get: func(v models.Vehicle, key string) (any, bool) {
			switch baseKey(key) {
			case "id":
				return v.ID, true
			case "supplier_id":
				return v.SupplierID, true
			case "brand_id":
				return v.BrandID, true
			case "type_id":
				return v.TypeID, true
			case "model_id":
				return v.ModelID, true
			case "plate_number":
				return v.PlateNumber, true
			case "seats":
				return v.Seats, true
			case "luggage_capacity":
				return v.LuggageCap, true
			case "active":
				return v.Active, true
			case "status":
				return activeStatus(v.Active), true
			}
			return nil, false
		},
	}
}

// ZoneSchema is the listview binding for the supplier zone table.
func ZoneSchema() listview.Schema[models.Zone] {
	return listview.Schema[models.Zone]{
		TextFields: []string{"name"},
		Get: func(z models.Zone, key string) (any, bool) {
			switch baseKey(key) {
			case "id":
				return z.ID, true
			case "name":
				return z.Name, true
			case "latitude":
				return z.Latitude, true
			case "longitude":
				return z.Longitude, true
			case "radius_km":
				return z.RadiusKM, true
			}
			return nil, false
		},
	}
}

// TransferSchema is the listview binding for the transfer-pricing table.
func TransferSchema() listview.Schema[models.Transfer] {
	return listview.Schema[models.Transfer]{
		TextFields: []string{"currency"},
		Get: func(t models.Transfer, key string) (any, bool) {
			switch baseKey(key) {
			case "id":
				return t.ID, true
			case "vehicle_id":
				return t.VehicleID, true
			case "zone_id":
				return t.ZoneID, true
			case "price":
				return t.Price, true
			case "tax":
				return t.Tax, true
			case "surcharge":
				return t.Surcharge, true
			case "currency":
				return t.Currency, true
			case "active":
				return t.Active, true
			case "status":
				return activeStatus(t.Active), true
			}
			return nil, false
		},
	}
}

// AdminSchema is the listview binding for the back-office admin table.
func AdminSchema() listview.Schema[models.Admin] {
	return listview.Schema[models.Admin]{
		TextFields: []string{"name", "email", "phone"},
		Get: func(a models.Admin, key string) (any, bool) {
			switch baseKey(key) {
			case "id":
				return a.ID, true
			case "name":
				return a.Name, true
			case "email":
				return a.Email, true
			case "phone":
				return a.Phone, true
			case "status":
				return a.Status, true
			case "can_manage_admins":
				return a.CanManageAdmins, true
			case "can_manage_bookings":
				return a.CanManageBookings, true
			case "can_manage_payments":
				return a.CanManagePayments, true
			case "can_manage_suppliers":
				return a.CanManageSuppliers, true
			}
			return nil, false
		},
	}
}
