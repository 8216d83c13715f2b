package comment

import (
	"errors"

	"github.com/spartaclub/newsfeed-server/cmd/models"
	"github.com/spartaclub/newsfeed-server/cmd/utils"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) FindComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("해당 요소가 존재하지 않습니다.")
		}
		return nil, err
	}
	return &comment, nil
}

// findScoped resolves a comment and checks it actually belongs to the
// feed named in the path.
func (s *Service) findScoped(feedID, commentID uint) (*models.Comment, error) {
	comment, err := s.FindComment(commentID)
	if err != nil {
		return nil, err
	}
	if comment.FeedID != feedID {
		return nil, utils.NotFound("해당 요소가 존재하지 않습니다.")
	}
	return comment, nil
}

func (s *Service) findFeed(id uint) (*models.Feed, error) {
	var feed models.Feed
	if err := s.db.First(&feed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("해당 요소가 존재하지 않습니다.")
		}
		return nil, err
	}
	return &feed, nil
}

func (s *Service) CreateComment(feedID uint, dto *CommentReqDto, user *models.User) (*CommentResDto, error) {
	feed, err := s.findFeed(feedID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Contents: dto.Contents,
		UserID:   user.ID,
		FeedID:   feed.ID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = user
	return NewCommentResDto(&comment), nil
}

func (s *Service) GetComment(feedID, commentID uint) (*CommentResDto, error) {
	comment, err := s.findScoped(feedID, commentID)
	if err != nil {
		return nil, err
	}
	return NewCommentResDto(comment), nil
}

// GetAllComments lists a feed's comments, newest first.
func (s *Service) GetAllComments(feedID uint) ([]*CommentResDto, error) {
	if _, err := s.findFeed(feedID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("feed_id = ?", feedID).Preload("User").
		Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}

	dtos := make([]*CommentResDto, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, NewCommentResDto(&comments[i]))
	}
	return dtos, nil
}

func (s *Service) UpdateComment(feedID, commentID uint, dto *CommentReqDto, user *models.User) (*CommentResDto, error) {
	comment, err := s.findScoped(feedID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != user.ID {
		return nil, utils.Forbidden("해당 작업은 작성자만 수정/삭제 할 수 있습니다!")
	}

	comment.Contents = dto.Contents
	if err := s.db.Save(comment).Error; err != nil {
		return nil, err
	}
	return NewCommentResDto(comment), nil
}

// DeleteComment removes the comment and purges every like row pointing
// at it, in one transaction.
func (s *Service) DeleteComment(feedID, commentID uint, user *models.User) error {
	comment, err := s.findScoped(feedID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != user.ID {
		return utils.Forbidden("해당 작업은 작성자만 수정/삭제 할 수 있습니다!")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contents_id = ? AND contents_type = ?", commentID, models.ContentsComment).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

// IncreaseCommentLikes bumps the counter unconditionally; mirrors the
// feed counter, including the missing floor.
func (s *Service) IncreaseCommentLikes(id uint) error {
	if _, err := s.FindComment(id); err != nil {
		return err
	}
	return s.db.Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

func (s *Service) DecreaseCommentLikes(id uint) error {
	if _, err := s.FindComment(id); err != nil {
		return err
	}
	return s.db.Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
}

func (s *Service) LikeComment(feedID, commentID uint, user *models.User) error {
	if _, err := s.findScoped(feedID, commentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND contents_id = ? AND contents_type = ?",
			user.ID, commentID, models.ContentsComment).First(&existing).Error
		if err == nil {
			return utils.Conflict("이미 좋아요를 누르셨습니다!")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.Like{
			UserID:       user.ID,
			ContentsID:   commentID,
			ContentsType: models.ContentsComment,
		}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
	})
}

func (s *Service) UnlikeComment(feedID, commentID uint, user *models.User) error {
	if _, err := s.findScoped(feedID, commentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND contents_id = ? AND contents_type = ?",
			user.ID, commentID, models.ContentsComment).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NotFound("해당 요소가 존재하지 않습니다.")
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
	})
}
