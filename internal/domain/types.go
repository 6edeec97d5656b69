package domain

import "strings"

// ID is used across domain entities.
type ID int64

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCompleted BookingStatus = "completed"
	BookingRejected  BookingStatus = "rejected"
)

// ParseBookingStatus normalizes and validates a raw status value.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case BookingPending, BookingApproved, BookingCompleted, BookingRejected:
		return s, true
	}
	return "", false
}

// CanTransition reports whether a booking may move from s to next.
// Pending bookings get approved or rejected; approved ones complete.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingRejected
	case BookingApproved:
		return next == BookingCompleted || next == BookingRejected
	}
	return false
}

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
)

func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case PaymentPending, PaymentCompleted, PaymentSuccessful, PaymentFailed:
		return s, true
	}
	return "", false
}

// IsPaid treats completed and successful as settled; the upstream gateway
// reports either depending on the payment method.
func (s PaymentStatus) IsPaid() bool {
	return s == PaymentCompleted || s == PaymentSuccessful
}

// Role identifies the calling account type.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleSupplier Role = "supplier"
)

func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleAgent, RoleSupplier:
		return r, true
	}
	return "", false
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
}
