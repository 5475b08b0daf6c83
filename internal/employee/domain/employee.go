package domain

import (
	"errors"
	"time"
)

// Employee is a field worker whose attendance check-ins are verified by this
// service. FallbackCodeHash is a bcrypt hash of the manual verification code;
// empty when no code has been assigned.
type Employee struct {
	ID               string
	OrgID            string
	DisplayName      string
	Status           EmployeeStatus
	FallbackCodeHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusDisabled EmployeeStatus = "disabled"
)

// Validate validates the employee for persistence. Returns an error describing the first validation failure.
func (e *Employee) Validate() error {
	if e.OrgID == "" {
		return errors.New("organization id is required")
	}
	if e.DisplayName == "" {
		return errors.New("display name is required")
	}
	if e.Status == "" {
		e.Status = EmployeeStatusActive
	}
	return nil
}
