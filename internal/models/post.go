package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostTextLen bounds post and comment text length.
const MaxPostTextLen = 500

// Post represents a post in the Chirp application. A post carries text,
// an image URL, or both.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Text      string         `gorm:"type:text" json:"text"`
	Img       string         `json:"img"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// LikeUserIDs is the set of user IDs that like this post; populated
	// at query time from the likes table, not persisted on the post row.
	LikeUserIDs []uint `gorm:"-" json:"likes"`
}
