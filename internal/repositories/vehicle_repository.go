package repositories

import (
	"database/sql"
	"errors"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleSelect = `
	SELECT id,
	       COALESCE(supplier_id,0),
	       COALESCE(brand_id,0),
	       COALESCE(type_id,0),
	       COALESCE(model_id,0),
	       COALESCE(plate_number,''),
	       COALESCE(seats,0),
	       COALESCE(luggage_capacity,0),
	       COALESCE(active,1)
	FROM vehicles`

func (r VehicleRepository) ListBySupplierID(supplierID int64) ([]models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(vehicleSelect+" WHERE supplier_id=? ORDER BY id DESC", supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.SupplierID, &v.BrandID, &v.TypeID, &v.ModelID,
			&v.PlateNumber, &v.Seats, &v.LuggageCap, &v.Active); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return models.Vehicle{}, domain.InternalError{Msg: "db not available"}
	}

	var v models.Vehicle
	err := db.QueryRow(vehicleSelect+" WHERE id=? LIMIT 1", id).Scan(
		&v.ID, &v.SupplierID, &v.BrandID, &v.TypeID, &v.ModelID,
		&v.PlateNumber, &v.Seats, &v.LuggageCap, &v.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, err
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO vehicles (supplier_id, brand_id, type_id, model_id, plate_number, seats, luggage_capacity, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.SupplierID, v.BrandID, v.TypeID, v.ModelID, v.PlateNumber, v.Seats, v.LuggageCap, v.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE vehicles
		SET brand_id=?, type_id=?, model_id=?, plate_number=?, seats=?, luggage_capacity=?, active=?
		WHERE id=? AND supplier_id=?`,
		v.BrandID, v.TypeID, v.ModelID, v.PlateNumber, v.Seats, v.LuggageCap, v.Active, v.ID, v.SupplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func (r VehicleRepository) Delete(id, supplierID int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM vehicles WHERE id=? AND supplier_id=?`, id, supplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

// Lookup tables: brands, types, models.

func (r VehicleRepository) ListBrands() ([]models.VehicleBrand, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	rows, err := db.Query(`SELECT id, COALESCE(name,'') FROM vehicle_brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleBrand{}
	for rows.Next() {
		var b models.VehicleBrand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r VehicleRepository) ListTypes() ([]models.VehicleType, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	rows, err := db.Query(`SELECT id, COALESCE(name,'') FROM vehicle_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleType{}
	for rows.Next() {
		var t models.VehicleType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r VehicleRepository) ListModels(brandID int64) ([]models.VehicleModel, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	query := `SELECT id, COALESCE(brand_id,0), COALESCE(name,'') FROM vehicle_models`
	args := []any{}
	if brandID > 0 {
		query += ` WHERE brand_id=?`
		args = append(args, brandID)
	}
	rows, err := db.Query(query+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleModel{}
	for rows.Next() {
		var m models.VehicleModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
