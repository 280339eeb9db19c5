package skill

type Skill struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;uniqueIndex:uq_skills_name"`
	Description *string `gorm:"type:text"`
}

func (Skill) TableName() string {
	return "skills"
}

type SkillRow struct {
	Skill
	EmployeeCount int64 `gorm:"column:employee_count"`
}
