package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	BadgeCode        string `json:"badge_code"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	EmployeeNumber   string `json:"employee_number"`
	BadgeCode        string `json:"badge_code,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Department       string `json:"department,omitempty"`
	HireDate         string `json:"hire_date"`
	EmploymentStatus string `json:"employment_status"`
	CompanyID        string `json:"company_id"`
}
