package catalog

import (
	"time"

	"coursehub/internal/domain/users"
)

type Course struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	PreviewURL  string      `json:"preview_url"`
	OwnerID     *uint       `gorm:"index" json:"owner_id"`
	Owner       *users.User `gorm:"foreignKey:OwnerID" json:"-"`
	Price       float64     `gorm:"not null;default:0" json:"price"`

	// LastUpdate is the notification clock, not gorm's UpdatedAt: it only
	// moves when a subscriber notification was actually enqueued.
	LastUpdate *time.Time `json:"last_update"`

	Lessons []Lesson `json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lesson struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	PreviewURL  string      `json:"preview_url"`
	VideoURL    string      `json:"video_url"`
	CourseID    uint        `gorm:"not null;index" json:"course_id"`
	Course      *Course     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	OwnerID     *uint       `gorm:"index" json:"owner_id"`
	Owner       *users.User `gorm:"foreignKey:OwnerID" json:"-"`
	Price       float64     `gorm:"not null;default:0" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription joins a user to a course; the composite unique index is
// what keeps subscribe idempotent under concurrent inserts.
type Subscription struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_subscriptions_user_course" json:"user_id"`
	User     users.User `json:"-"`
	CourseID uint       `gorm:"not null;uniqueIndex:idx_subscriptions_user_course" json:"course_id"`
	Course   Course     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (c Course) OwnedBy() *uint { return c.OwnerID }

func (l Lesson) OwnedBy() *uint { return l.OwnerID }
