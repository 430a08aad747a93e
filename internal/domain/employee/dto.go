package employee

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	Status     *EmploymentStatus
	Department *string
}

type CreateEmployeeRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Email      string          `json:"email" validate:"required,email,max=255"`
	Department string          `json:"department" validate:"required,max=100"`
	Position   string          `json:"position" validate:"required,max=100"`
	Phone      *string         `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address    *string         `json:"address,omitempty"`
	HireDate   string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Salary     decimal.Decimal `json:"salary"`
	Status     string          `json:"status,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}
	if r.Status != "" && !EmploymentStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Active, Inactive, On Leave"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email      *string          `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Department *string          `json:"department,omitempty" validate:"omitempty,min=1,max=100"`
	Position   *string          `json:"position,omitempty" validate:"omitempty,min=1,max=100"`
	Phone      *string          `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address    *string          `json:"address,omitempty"`
	HireDate   *string          `json:"hire_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	Status     *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}
	if r.Status != nil && !EmploymentStatus(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Active, Inactive, On Leave"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Phone      *string         `json:"phone,omitempty"`
	Address    *string         `json:"address,omitempty"`
	HireDate   string          `json:"hire_date"`
	Salary     decimal.Decimal `json:"salary"`
	Status     string          `json:"status"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Phone:      e.Phone,
		Address:    e.Address,
		HireDate:   e.HireDate.Format(validator.DateLayout),
		Salary:     e.Salary,
		Status:     string(e.Status),
	}
}
