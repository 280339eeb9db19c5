package department

type Department struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;uniqueIndex:uq_departments_name"`
	Description *string `gorm:"type:text"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentRow is a department read together with its employee count.
type DepartmentRow struct {
	Department
	EmployeeCount int64 `gorm:"column:employee_count"`
}
