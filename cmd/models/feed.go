package models

import "gorm.io/gorm"

// ContentsType tells which table a Like row points at. A Like keeps a
// plain id+type pair instead of a foreign key because it can target
// either a feed or a comment.
type ContentsType string

const (
	ContentsFeed    ContentsType = "FEED"
	ContentsComment ContentsType = "COMMENT"
)

type Feed struct {
	gorm.Model
	Contents string `gorm:"column:contents;type:text;not null" json:"contents"`
	Likes    int64  `gorm:"column:likes;not null;default:0" json:"likes"`
	UserID   uint   `gorm:"column:user_id;not null" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Comments []Comment `gorm:"foreignKey:FeedID" json:"comments,omitempty"`
}

type Comment struct {
	gorm.Model
	Contents string `gorm:"column:contents;type:text;not null" json:"contents"`
	Likes    int64  `gorm:"column:likes;not null;default:0" json:"likes"`
	UserID   uint   `gorm:"column:user_id;not null" json:"user_id"`
	FeedID   uint   `gorm:"column:feed_id;not null" json:"feed_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Feed     *Feed  `gorm:"foreignKey:FeedID" json:"feed,omitempty"`
}

// Like marks that a user liked a feed or a comment. The row is the
// durable "has liked" fact; the Likes counter on the target is kept
// separately and is not derived from these rows.
type Like struct {
	gorm.Model
	UserID       uint         `gorm:"column:user_id;not null;index" json:"user_id"`
	ContentsID   uint         `gorm:"column:contents_id;not null;index" json:"contents_id"`
	ContentsType ContentsType `gorm:"column:contents_type;size:50;not null;index" json:"contents_type"`
	User         *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
