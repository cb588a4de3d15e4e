package models

import "time"

// Address is a user's saved delivery address.
type Address struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index:addresses_user_id_idx"`
	Consignee string    `gorm:"column:consignee;not null"`
	Address   string    `gorm:"column:address;not null"`
	Phone     string    `gorm:"column:phone;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
