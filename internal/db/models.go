package db

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a stored item record
type Item struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index:idx_items_name" json:"name"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Item model
func (Item) TableName() string {
	return "items"
}

// BeforeCreate hook to set timestamps
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook to refresh the updated timestamp
func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
