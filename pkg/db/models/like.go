package models

import "time"

// Like links a user to a listing they currently like. Presence of the row is
// the like; there is no flag column.
type Like struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:likes_user_listing_key"`
	ListingID int64     `gorm:"column:listing_id;not null;index:likes_listing_id_idx;uniqueIndex:likes_user_listing_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
