package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenTransaction is one immutable ledger fact. A nil FromEmployeeID means
// the tokens were minted by the system (auto-distribution, admin grant).
// Rows are never updated or deleted once written.
type TokenTransaction struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference      uuid.UUID `gorm:"column:reference;type:uuid;uniqueIndex" json:"reference"`
	FromEmployeeID *uint     `gorm:"column:from_employee_id" json:"from_employee_id"`
	ToEmployeeID   uint      `gorm:"column:to_employee_id;not null" json:"to_employee_id"`
	TokenTypeID    uint      `gorm:"column:token_type_id;not null" json:"token_type_id"`
	Count          int64     `gorm:"column:count;not null;default:1" json:"count"`
	Message        string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt      time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (TokenTransaction) TableName() string {
	return "token_transactions"
}

func (t *TokenTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == uuid.Nil {
		t.Reference = uuid.New()
	}
	return nil
}
