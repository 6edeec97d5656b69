package repositories

import (
	"database/sql"
	"errors"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

// TransferRepository manages transfer pricing rules and the zones they
// reference.
type TransferRepository struct {
	DB *sql.DB
}

func (r TransferRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const transferSelect = `
	SELECT t.id,
	       COALESCE(t.vehicle_id,0),
	       COALESCE(t.zone_id,0),
	       COALESCE(t.price,0),
	       COALESCE(t.tax,0),
	       COALESCE(t.surcharge,0),
	       COALESCE(t.currency,''),
	       COALESCE(t.active,1)
	FROM transfers t`

// ListBySupplierID returns transfer rules for every vehicle the supplier
// owns.
func (r TransferRepository) ListBySupplierID(supplierID int64) ([]models.Transfer, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(transferSelect+`
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE v.supplier_id=?
		ORDER BY t.id DESC`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransfers(rows)
}

func scanTransfers(rows *sql.Rows) ([]models.Transfer, error) {
	out := []models.Transfer{}
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.ZoneID, &t.Price, &t.Tax,
			&t.Surcharge, &t.Currency, &t.Active); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TransferRepository) GetByID(id int64) (models.Transfer, error) {
	db := r.db()
	if db == nil {
		return models.Transfer{}, domain.InternalError{Msg: "db not available"}
	}

	var t models.Transfer
	err := db.QueryRow(transferSelect+" WHERE t.id=? LIMIT 1", id).Scan(
		&t.ID, &t.VehicleID, &t.ZoneID, &t.Price, &t.Tax, &t.Surcharge, &t.Currency, &t.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transfer{}, domain.NotFoundError{Resource: "transfer"}
	}
	return t, err
}

func (r TransferRepository) Create(t models.Transfer) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	// One active rule per vehicle+zone pair.
	var existing int64
	_ = db.QueryRow(`SELECT id FROM transfers WHERE vehicle_id=? AND zone_id=? LIMIT 1`,
		t.VehicleID, t.ZoneID).Scan(&existing)
	if existing > 0 {
		return 0, domain.ConflictError{Resource: "transfer", Msg: "rule already exists for this vehicle and zone"}
	}

	res, err := db.Exec(`
		INSERT INTO transfers (vehicle_id, zone_id, price, tax, surcharge, currency, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.VehicleID, t.ZoneID, t.Price, t.Tax, t.Surcharge, t.Currency, t.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TransferRepository) Update(t models.Transfer) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE transfers
		SET price=?, tax=?, surcharge=?, currency=?, active=?
		WHERE id=?`,
		t.Price, t.Tax, t.Surcharge, t.Currency, t.Active, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "transfer"}
	}
	return nil
}

func (r TransferRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM transfers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "transfer"}
	}
	return nil
}

// Zones.

const zoneSelect = `
	SELECT id,
	       COALESCE(supplier_id,0),
	       COALESCE(name,''),
	       COALESCE(latitude,0),
	       COALESCE(longitude,0),
	       COALESCE(radius_km,0)
	FROM zones`

func (r TransferRepository) ListZones(supplierID int64) ([]models.Zone, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(zoneSelect+" WHERE supplier_id=? ORDER BY name", supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Zone{}
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.SupplierID, &z.Name, &z.Latitude, &z.Longitude, &z.RadiusKM); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func (r TransferRepository) CreateZone(z models.Zone) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO zones (supplier_id, name, latitude, longitude, radius_km)
		VALUES (?, ?, ?, ?, ?)`,
		z.SupplierID, z.Name, z.Latitude, z.Longitude, z.RadiusKM)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TransferRepository) UpdateZone(z models.Zone) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE zones SET name=?, latitude=?, longitude=?, radius_km=?
		WHERE id=? AND supplier_id=?`,
		z.Name, z.Latitude, z.Longitude, z.RadiusKM, z.ID, z.SupplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "zone"}
	}
	return nil
}

func (r TransferRepository) DeleteZone(id, supplierID int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM zones WHERE id=? AND supplier_id=?`, id, supplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "zone"}
	}
	return nil
}
