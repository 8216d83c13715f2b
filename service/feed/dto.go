package feed

import (
	"time"

	"github.com/spartaclub/newsfeed-server/cmd/models"
)

type FeedReqDto struct {
	Contents string `json:"contents" validate:"required"`
}

type FeedResDto struct {
	ID         uint      `json:"id"`
	Contents   string    `json:"contents"`
	Likes      int64     `json:"likes"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func NewFeedResDto(feed *models.Feed) *FeedResDto {
	dto := &FeedResDto{
		ID:         feed.ID,
		Contents:   feed.Contents,
		Likes:      feed.Likes,
		CreatedAt:  feed.CreatedAt,
		ModifiedAt: feed.UpdatedAt,
	}
	if feed.User != nil {
		dto.Username = feed.User.Username
	}
	return dto
}
