package domain

import "fmt"

// UserRole represents user role in the system
type UserRole string

const (
	RoleHost   UserRole = "HOST"
	RoleClient UserRole = "CLIENT"
	RoleAdmin  UserRole = "ADMIN"
)

// ParseUserRole decodes a role string from free-form input.
// Unknown values fail with a Validation error, never a panic.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleHost, RoleClient, RoleAdmin:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("%w: unknown user role %q", ErrValidation, s)
}

// UserStatus represents the user lifecycle state.
// ACTIVE and BLOCKED are admin-reversible; DELETED is terminal.
type UserStatus string

const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
	UserDeleted UserStatus = "DELETED"
)

// ParseUserStatus decodes a user status string
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserActive, UserBlocked, UserDeleted:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown user status %q", ErrValidation, s)
}

// PropertyStatus represents the property lifecycle state.
// DELETED is terminal and requires no active bookings.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVAILABLE"
	PropertyBooked    PropertyStatus = "BOOKED"
	PropertyDeleted   PropertyStatus = "DELETED"
)

// ParsePropertyStatus decodes a property status string
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	switch PropertyStatus(s) {
	case PropertyAvailable, PropertyBooked, PropertyDeleted:
		return PropertyStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown property status %q", ErrValidation, s)
}

// BookingStatus represents the booking lifecycle state
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// IsActive reports whether the booking blocks property deletion
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// IsTerminal reports whether no further transition is legal
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// CanTransitionTo reports whether s -> next is a legal booking transition.
// PENDING -> CONFIRMED | CANCELLED; CONFIRMED -> CANCELLED | COMPLETED.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled || next == BookingCompleted
	}
	return false
}

// ParseBookingStatus decodes a booking status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
}

// ComplaintStatus represents the complaint resolution state
type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "PENDING"
	ComplaintResolved ComplaintStatus = "RESOLVED"
	ComplaintRejected ComplaintStatus = "REJECTED"
)

// ComplaintType classifies a complaint
type ComplaintType string

const (
	ComplaintService     ComplaintType = "SERVICE"
	ComplaintCleanliness ComplaintType = "CLEANLINESS"
	ComplaintPayment     ComplaintType = "PAYMENT"
	ComplaintSafety      ComplaintType = "SAFETY"
	ComplaintOther       ComplaintType = "OTHER"
)

// ParseComplaintType decodes a complaint type string
func ParseComplaintType(s string) (ComplaintType, error) {
	switch ComplaintType(s) {
	case ComplaintService, ComplaintCleanliness, ComplaintPayment, ComplaintSafety, ComplaintOther:
		return ComplaintType(s), nil
	}
	return "", fmt.Errorf("%w: unknown complaint type %q", ErrValidation, s)
}

// AuditAction classifies an audit record
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionLogin  AuditAction = "LOGIN"
	ActionLogout AuditAction = "LOGOUT"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)
