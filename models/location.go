package models

// Location holds the coordinates an event takes place at.
type Location struct {
	ID  uint    `gorm:"primaryKey" json:"id"`
	Lat float64 `gorm:"not null" json:"lat"`
	Lon float64 `gorm:"not null" json:"lon"`
}
