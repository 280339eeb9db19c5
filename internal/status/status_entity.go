package status

// ActiveID is the status assigned to employees created without one.
const ActiveID uint = 1

type Status struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;uniqueIndex:uq_statuses_name"`
}

func (Status) TableName() string {
	return "statuses"
}

type StatusRow struct {
	Status
	EmployeeCount int64 `gorm:"column:employee_count"`
}
