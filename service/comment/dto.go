package comment

import (
	"time"

	"github.com/spartaclub/newsfeed-server/cmd/models"
)

type CommentReqDto struct {
	Contents string `json:"contents" validate:"required"`
}

type CommentResDto struct {
	ID         uint      `json:"id"`
	FeedID     uint      `json:"feedId"`
	Contents   string    `json:"contents"`
	Likes      int64     `json:"likes"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func NewCommentResDto(comment *models.Comment) *CommentResDto {
	dto := &CommentResDto{
		ID:         comment.ID,
		FeedID:     comment.FeedID,
		Contents:   comment.Contents,
		Likes:      comment.Likes,
		CreatedAt:  comment.CreatedAt,
		ModifiedAt: comment.UpdatedAt,
	}
	if comment.User != nil {
		dto.Username = comment.User.Username
	}
	return dto
}
