package models

import "time"

type Follow struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerID int64     `json:"follower_id" gorm:"not null;uniqueIndex:idx_follower_followee"`
	FolloweeID int64     `json:"followee_id" gorm:"not null;uniqueIndex:idx_follower_followee;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Follower User `json:"follower,omitempty" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;"`
	Followee User `json:"followee,omitempty" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE;"`
}

func (Follow) TableName() string {
	return "follows"
}
