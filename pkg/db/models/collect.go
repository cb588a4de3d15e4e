package models

import "time"

// Collect links a user to a listing they have collected (favorited).
type Collect struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:collects_user_listing_key"`
	ListingID int64     `gorm:"column:listing_id;not null;index:collects_listing_id_idx;uniqueIndex:collects_user_listing_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
