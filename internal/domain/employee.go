package domain

import (
	"time"

	"gorm.io/gorm"
)

// Employee is the minimal identity the ledger needs: transfers and
// achievement criteria reference it, nothing here owns HR data.
type Employee struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName  string         `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Email     string         `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	HiredAt   time.Time      `gorm:"column:hired_at" json:"hired_at"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
