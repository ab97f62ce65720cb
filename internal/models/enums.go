package models

import (
	"strings"

	"github.com/beesaferoot/tenancy/internal/apperr"
)

// Enumerations are stored as their canonical upper-case tag and rendered in
// lower case at the text/JSON boundary. Parsing is case-insensitive and fails
// closed on unknown tokens.

type Role string

const (
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
	RoleAdmin    Role = "ADMIN"
)

var allRoles = []Role{RoleLandlord, RoleTenant, RoleAdmin}

func ParseRole(s string) (Role, error) {
	// Accept the legacy "ROLE_" prefix used by older account records.
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_")
	return parseEnum("role", s, allRoles)
}

func (r Role) MarshalText() ([]byte, error) { return lowerText(r) }

func (r *Role) UnmarshalText(b []byte) error { return unmarshalEnum(r, b, ParseRole) }

type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "AVAILABLE"
	PropertyRented      PropertyStatus = "RENTED"
	PropertyMaintenance PropertyStatus = "MAINTENANCE"
)

var allPropertyStatuses = []PropertyStatus{PropertyAvailable, PropertyRented, PropertyMaintenance}

func ParsePropertyStatus(s string) (PropertyStatus, error) {
	return parseEnum("property status", s, allPropertyStatuses)
}

func (s PropertyStatus) MarshalText() ([]byte, error) { return lowerText(s) }

func (s *PropertyStatus) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, ParsePropertyStatus)
}

type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "ACTIVE"
	LeaseExpired    LeaseStatus = "EXPIRED"
	LeaseTerminated LeaseStatus = "TERMINATED"
)

var allLeaseStatuses = []LeaseStatus{LeaseActive, LeaseExpired, LeaseTerminated}

func ParseLeaseStatus(s string) (LeaseStatus, error) {
	return parseEnum("lease status", s, allLeaseStatuses)
}

func (s LeaseStatus) MarshalText() ([]byte, error) { return lowerText(s) }

func (s *LeaseStatus) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, ParseLeaseStatus)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

var allPaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum("payment status", s, allPaymentStatuses)
}

func (s PaymentStatus) MarshalText() ([]byte, error) { return lowerText(s) }

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, ParsePaymentStatus)
}

type MaintenanceCategory string

const (
	CategoryPlumbing   MaintenanceCategory = "PLUMBING"
	CategoryElectrical MaintenanceCategory = "ELECTRICAL"
	CategoryHVAC       MaintenanceCategory = "HVAC"
	CategoryAppliance  MaintenanceCategory = "APPLIANCE"
	CategoryStructural MaintenanceCategory = "STRUCTURAL"
	CategoryOther      MaintenanceCategory = "OTHER"
)

var allCategories = []MaintenanceCategory{
	CategoryPlumbing, CategoryElectrical, CategoryHVAC,
	CategoryAppliance, CategoryStructural, CategoryOther,
}

func ParseMaintenanceCategory(s string) (MaintenanceCategory, error) {
	return parseEnum("maintenance category", s, allCategories)
}

func (c MaintenanceCategory) MarshalText() ([]byte, error) { return lowerText(c) }

func (c *MaintenanceCategory) UnmarshalText(b []byte) error {
	return unmarshalEnum(c, b, ParseMaintenanceCategory)
}

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "LOW"
	PriorityMedium MaintenancePriority = "MEDIUM"
	PriorityHigh   MaintenancePriority = "HIGH"
	PriorityUrgent MaintenancePriority = "URGENT"
)

var allPriorities = []MaintenancePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParseMaintenancePriority(s string) (MaintenancePriority, error) {
	return parseEnum("maintenance priority", s, allPriorities)
}

func (p MaintenancePriority) MarshalText() ([]byte, error) { return lowerText(p) }

func (p *MaintenancePriority) UnmarshalText(b []byte) error {
	return unmarshalEnum(p, b, ParseMaintenancePriority)
}

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "PENDING"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceCancelled  MaintenanceStatus = "CANCELLED"
)

var allMaintenanceStatuses = []MaintenanceStatus{
	MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled,
}

func ParseMaintenanceStatus(s string) (MaintenanceStatus, error) {
	return parseEnum("maintenance status", s, allMaintenanceStatuses)
}

// Terminal reports whether no further transition is allowed.
func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

// CanMoveTo reports whether a request may go from s to next. Work only moves
// forward: PENDING starts or is cancelled, IN_PROGRESS completes or is
// cancelled.
func (s MaintenanceStatus) CanMoveTo(next MaintenanceStatus) bool {
	switch s {
	case MaintenancePending:
		return next == MaintenanceInProgress || next == MaintenanceCancelled
	case MaintenanceInProgress:
		return next == MaintenanceCompleted || next == MaintenanceCancelled
	}
	return false
}

func (s MaintenanceStatus) MarshalText() ([]byte, error) { return lowerText(s) }

func (s *MaintenanceStatus) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, ParseMaintenanceStatus)
}

type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationWarning NotificationType = "WARNING"
	NotificationSuccess NotificationType = "SUCCESS"
)

var allNotificationTypes = []NotificationType{NotificationInfo, NotificationWarning, NotificationSuccess}

func ParseNotificationType(s string) (NotificationType, error) {
	return parseEnum("notification type", s, allNotificationTypes)
}

func (t NotificationType) MarshalText() ([]byte, error) { return lowerText(t) }

func (t *NotificationType) UnmarshalText(b []byte) error {
	return unmarshalEnum(t, b, ParseNotificationType)
}

func parseEnum[T ~string](kind, s string, values []T) (T, error) {
	token := strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(token, string(v)) {
			return v, nil
		}
	}
	var zero T
	if token == "" {
		return zero, apperr.Validation(kind, "value is required")
	}
	return zero, apperr.Validation(kind, "unrecognized value %q", s)
}

func lowerText[T ~string](v T) ([]byte, error) {
	return []byte(strings.ToLower(string(v))), nil
}

func unmarshalEnum[T ~string](dst *T, b []byte, parse func(string) (T, error)) error {
	v, err := parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
