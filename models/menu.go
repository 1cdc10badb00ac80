package models

import "time"

// Menu groups menu items offered together (e.g. breakfast, drinks).
type Menu struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	MenuItems   []MenuItem `gorm:"foreignKey:MenuID" json:"menu_items,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
