package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is the user lifecycle flag. Withdrawal flips a user to
// DEACTIVATE; the row itself is kept.
type Status string

const (
	StatusActivate   Status = "ACTIVATE"
	StatusDeactivate Status = "DEACTIVATE"
)

type User struct {
	gorm.Model
	Username      string    `gorm:"column:username;size:255;uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"column:password;size:255;not null" json:"-"`
	Name          string    `gorm:"column:name;size:255;not null" json:"name"`
	Email         string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	UserInfo      string    `gorm:"column:user_info;type:text" json:"user_info"`
	Status        Status    `gorm:"column:status;size:50;not null;default:ACTIVATE" json:"status"`
	RefreshToken  string    `gorm:"column:refresh_token;size:255" json:"-"`
	StatusModTime time.Time `gorm:"column:status_mod_time" json:"status_mod_time"`

	Feeds    []Feed    `gorm:"foreignKey:UserID" json:"feeds,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}
