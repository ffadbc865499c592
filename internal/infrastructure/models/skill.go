package models

type Skill struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(50);not null;index"`
	Level     int    `gorm:"not null;default:1;check:level BETWEEN 1 AND 5"`
}

func (Skill) TableName() string {
	return "skills"
}
