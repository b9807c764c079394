package domain

import "time"

// EmployeeTokenBalance caches the net of the transaction log for one
// (employee, token type) pair. The log is authoritative; this row is
// created lazily on first credit and reset to 0 rather than deleted.
type EmployeeTokenBalance struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID  uint      `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_token" json:"employee_id"`
	TokenTypeID uint      `gorm:"column:token_type_id;not null;uniqueIndex:idx_employee_token" json:"token_type_id"`
	Count       int64     `gorm:"column:count;not null;default:0" json:"count"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (EmployeeTokenBalance) TableName() string {
	return "employee_tokens"
}
