package domain

import "time"

// TokenType defines a token denomination. Color and icon are carried for
// the frontend, never interpreted here. Rows are edited administratively
// and must not be deleted while a transaction references them.
type TokenType struct {
	ID                     uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                   string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Value                  int       `gorm:"column:value;not null;default:1" json:"value"`
	Color                  string    `gorm:"column:color;type:varchar(20)" json:"color"`
	Icon                   string    `gorm:"column:icon;type:varchar(100)" json:"icon"`
	AutoDistributionActive bool      `gorm:"column:auto_distribution_active;not null;default:false" json:"auto_distribution_active"`
	DistributionAmount     int64     `gorm:"column:distribution_amount;not null;default:1" json:"distribution_amount"`
	CreatedAt              time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt              time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (TokenType) TableName() string {
	return "token_types"
}
