package models

// Compilation is a curated, optionally pinned selection of events.
type Compilation struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"size:50;not null" json:"title"`
	Pinned bool    `gorm:"not null;default:false" json:"pinned"`
	Events []Event `gorm:"many2many:compilation_events" json:"-"`
}
