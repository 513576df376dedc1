package models

import "time"

// Notification points at its target through the (Kind, TargetID) pair. The
// pair is resolved through the notify registry at read time, never through a
// database foreign key: the same column addresses a different table per kind,
// and the target may be deleted while the notification lives on.
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"` // recipient
	Kind      string    `gorm:"not null;size:20" json:"kind"`  // review, follow, derive
	TargetID  int64     `gorm:"not null" json:"target_id"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
