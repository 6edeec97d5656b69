package models

// Admin is a back-office account with per-module permission flags.
type Admin struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Status             string `json:"status"`
	CanManageAdmins    bool   `json:"can_manage_admins"`
	CanManageBookings  bool   `json:"can_manage_bookings"`
	CanManagePayments  bool   `json:"can_manage_payments"`
	CanManageSuppliers bool   `json:"can_manage_suppliers"`
}

// AdminInput is the create/update payload; Password is hashed before storage.
type AdminInput struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	Password           string `json:"password"`
	CanManageAdmins    bool   `json:"can_manage_admins"`
	CanManageBookings  bool   `json:"can_manage_bookings"`
	CanManagePayments  bool   `json:"can_manage_payments"`
	CanManageSuppliers bool   `json:"can_manage_suppliers"`
}
