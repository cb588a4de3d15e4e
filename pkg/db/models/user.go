package models

import (
	"time"

	"github.com/Sum1ght/schand/pkg/enums"
)

// User represents the canonical account entity.
type User struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;not null;uniqueIndex:users_username_key"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Name         string     `gorm:"column:name;not null"`
	Phone        *string    `gorm:"column:phone"`
	Email        *string    `gorm:"column:email"`
	Avatar       *string    `gorm:"column:avatar"`
	Role         enums.Role `gorm:"column:role;not null;default:'user'"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
