package models

import "time"

type PriceAlert struct {
	ID               string      `json:"id"`
	ProductID        string      `json:"productId"`
	ProductName      string      `json:"productName"`
	TargetPrice      int64       `json:"targetPrice"`
	CurrentPrice     int64       `json:"currentPrice"`
	Platform         Marketplace `json:"platform"`
	IsActive         bool        `json:"isActive"`
	NotificationSent bool        `json:"notificationSent"`
	CreatedAt        time.Time   `json:"createdAt"`
	TriggeredAt      *time.Time  `json:"triggeredAt,omitempty"`
	UserID           string      `json:"userId"`
}

// Pending reports whether the alert still waits for its price target.
func (a PriceAlert) Pending() bool {
	return a.IsActive && !a.NotificationSent
}
