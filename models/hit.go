package models

import "time"

// Hit is one recorded page view. Rows are append-only; repeated visits from
// the same ip and uri are stored as separate rows and deduplicated only at
// query time.
type Hit struct {
	ID        uint      `gorm:"primaryKey"`
	App       string    `gorm:"size:64;not null"`
	URI       string    `gorm:"size:255;not null;index"`
	IP        string    `gorm:"size:45;not null"`
	Timestamp time.Time `gorm:"not null;index"`
}
