package position

import "github.com/shopspring/decimal"

type Position struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"size:100;not null;uniqueIndex:uq_positions_title"`
	Description *string         `gorm:"type:text"`
	BaseSalary  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (Position) TableName() string {
	return "positions"
}

type PositionRow struct {
	Position
	EmployeeCount int64 `gorm:"column:employee_count"`
}
