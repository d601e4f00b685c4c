package domain

import "time"

// Meme represents one shared image with its metadata. It is the only
// persisted entity in the system; rows are created once and never updated.
type Meme struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	Rating      int       `gorm:"not null;default:0" json:"rating"`
	Author      string    `gorm:"type:text;not null" json:"author"`
}

// TableName returns the database table name for Meme.
func (Meme) TableName() string {
	return "memes"
}
