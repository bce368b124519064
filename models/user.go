package models

// User is a platform account managed through the admin API.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:250;not null" json:"name"`
	Email string `gorm:"size:254;not null;uniqueIndex" json:"email"`
}
