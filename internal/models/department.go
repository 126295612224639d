package models

import "slices"

// Department is one of the fixed organisational units an employee belongs to.
type Department string

const (
	DepartmentHR              Department = "HR"
	DepartmentFinance         Department = "Finance"
	DepartmentEngineering     Department = "Engineering"
	DepartmentSales           Department = "Sales"
	DepartmentMarketing       Department = "Marketing"
	DepartmentIT              Department = "IT"
	DepartmentOperations      Department = "Operations"
	DepartmentCustomerSupport Department = "Customer Support"
)

// Departments lists every valid department in declaration order.
var Departments = []Department{ //nolint:gochecknoglobals // closed enumeration
	DepartmentHR,
	DepartmentFinance,
	DepartmentEngineering,
	DepartmentSales,
	DepartmentMarketing,
	DepartmentIT,
	DepartmentOperations,
	DepartmentCustomerSupport,
}

// IsValid reports whether d is one of Departments.
func (d Department) IsValid() bool {
	return slices.Contains(Departments, d)
}
