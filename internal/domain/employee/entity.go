package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	Name       string
	Email      string
	Department string
	Position   string
	Phone      *string
	Address    *string
	HireDate   time.Time
	Salary     decimal.Decimal
	Status     EmploymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "Active"
	StatusInactive EmploymentStatus = "Inactive"
	StatusOnLeave  EmploymentStatus = "On Leave"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}
