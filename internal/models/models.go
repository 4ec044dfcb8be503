package models

import (
	"time"
)

// PostStatus is the lifecycle state of a post. Deletion is a soft
// status flip; there is no path back out of DELETED.
type PostStatus string

const (
	PostActive  PostStatus = "ACTIVE"
	PostDeleted PostStatus = "DELETED"
	PostFlagged PostStatus = "FLAGGED"
)

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostActive, PostDeleted, PostFlagged:
		return true
	}
	return false
}

// Role is a user's access level.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries admin rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is an account holder. Users are hard-deleted; the password is
// a bcrypt hash and never serialized.
type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName        string    `gorm:"size:50;not null" json:"firstName"`
	LastName         string    `gorm:"size:50;not null" json:"lastName"`
	PhoneNumber      string    `gorm:"size:15;not null" json:"phoneNumber"`
	PhoneCountryCode string    `gorm:"size:5;not null" json:"phoneCountryCode"`
	Country          string    `gorm:"size:50;not null;index" json:"country"`
	City             string    `gorm:"size:50;not null;index" json:"city"`
	Email            string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Role             Role      `gorm:"size:20;not null;default:user;index" json:"role"`
	Password         string    `gorm:"size:150;not null" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Post belongs to a User. Destroyed only by soft delete (status flip
// to DELETED), never removed physically.
type Post struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	UserID     string     `gorm:"type:uuid;not null;index" json:"userId"`
	TotalVotes int        `gorm:"not null;default:0;index" json:"totalVotes"`
	Status     PostStatus `gorm:"size:10;not null;default:ACTIVE;index" json:"status"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Author     *User      `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

// Vote is a poll/ballot entity. Hard-deleted on request; unrelated to
// Post.TotalVotes.
type Vote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Date      time.Time `gorm:"not null" json:"date"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	Finished  bool      `gorm:"not null" json:"finished"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is a direct chat message between two users. ReadAt is kept
// in the schema but no operation marks messages read yet.
type Message struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	SenderID   string     `gorm:"type:uuid;not null;index" json:"senderId"`
	ReceiverID string     `gorm:"type:uuid;not null;index" json:"receiverId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
