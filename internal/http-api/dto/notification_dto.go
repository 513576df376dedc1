package dto

import (
	"html/template"
	"time"
)

// NotificationResponse is one rendered, still-resolvable notification.
type NotificationResponse struct {
	ID        int64         `json:"id"`
	Kind      string        `json:"kind"`
	Message   template.HTML `json:"message"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"created_at"`
}

// UnreadCountResponse for the polling badge endpoint
type UnreadCountResponse struct {
	Count int `json:"count"`
}
