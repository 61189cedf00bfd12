package models

import "time"

// NotificationTypeLike is the only notification kind currently produced.
// There is deliberately no "unlike" kind: unliking never retracts or
// creates a notification.
const NotificationTypeLike = "like"

// Notification is a derived record written as a side effect of a like.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromID    uint      `gorm:"not null;index" json:"from_id"`
	From      User      `gorm:"foreignKey:FromID" json:"-"`
	ToID      uint      `gorm:"not null;index" json:"to_id"`
	PostID    uint      `gorm:"not null" json:"post_id"`
	Type      string    `gorm:"not null;default:'like'" json:"type"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationView is the API projection of a notification, with the
// acting user reduced to public fields.
type NotificationView struct {
	ID        uint        `json:"id"`
	From      UserSummary `json:"from"`
	ToID      uint        `json:"to_id"`
	PostID    uint        `json:"post_id"`
	Type      string      `json:"type"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

// View converts a notification (with From preloaded) to its API projection.
func (n *Notification) View() NotificationView {
	return NotificationView{
		ID:        n.ID,
		From:      n.From.Summary(),
		ToID:      n.ToID,
		PostID:    n.PostID,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
