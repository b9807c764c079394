package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement is a badge definition. Criteria holds a tagged JSON predicate
// (see achievements.Criteria) evaluated against an employee's aggregate
// state; free-form code is never stored here.
type Achievement struct {
	ID          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Icon        string         `gorm:"column:icon;type:varchar(100)" json:"icon"`
	Criteria    datatypes.JSON `gorm:"column:criteria" json:"criteria"`
	Active      bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt   time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// EmployeeAchievement records a grant. The unique index makes a grant
// at-most-once per (employee, achievement) pair; grants are never retracted.
type EmployeeAchievement struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID    uint      `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_achievement" json:"employee_id"`
	AchievementID uint      `gorm:"column:achievement_id;not null;uniqueIndex:idx_employee_achievement" json:"achievement_id"`
	ReceivedAt    time.Time `gorm:"column:received_at;not null" json:"received_at"`
	CreatedAt     time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (EmployeeAchievement) TableName() string {
	return "employee_achievements"
}
