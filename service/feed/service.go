package feed

import (
	"errors"
	"time"

	"github.com/spartaclub/newsfeed-server/cmd/models"
	"github.com/spartaclub/newsfeed-server/cmd/utils"
	"gorm.io/gorm"
)

const pageSize = 10

// sort keys accepted by GetAllFeeds, mapped to their columns.
var sortColumns = map[string]string{
	"":           "created_at",
	"createdAt":  "created_at",
	"modifiedAt": "updated_at",
	"likes":      "likes",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) FindFeed(id uint) (*models.Feed, error) {
	var feed models.Feed
	if err := s.db.Preload("User").First(&feed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("해당 요소가 존재하지 않습니다.")
		}
		return nil, err
	}
	return &feed, nil
}

func (s *Service) CreateFeed(dto *FeedReqDto, user *models.User) (*FeedResDto, error) {
	feed := models.Feed{
		Contents: dto.Contents,
		UserID:   user.ID,
	}
	if err := s.db.Create(&feed).Error; err != nil {
		return nil, err
	}
	feed.User = user
	return NewFeedResDto(&feed), nil
}

func (s *Service) GetFeed(id uint) (*FeedResDto, error) {
	feed, err := s.FindFeed(id)
	if err != nil {
		return nil, err
	}
	return NewFeedResDto(feed), nil
}

// GetAllFeeds returns one zero-based page of feeds ordered by sortBy
// descending, optionally restricted to feeds created between startDate
// and endDate (whole days, inclusive).
func (s *Service) GetAllFeeds(page int, sortBy string, startDate, endDate *time.Time) ([]*FeedResDto, error) {
	order, ok := sortColumns[sortBy]
	if !ok {
		return nil, utils.BadRequest("지원하지 않는 정렬 기준입니다.")
	}
	if page < 0 {
		page = 0
	}

	query := s.db.Model(&models.Feed{}).Preload("User").Order(order + " DESC")
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at < ?", endDate.AddDate(0, 0, 1))
	}

	var feeds []models.Feed
	if err := query.Offset(page * pageSize).Limit(pageSize).Find(&feeds).Error; err != nil {
		return nil, err
	}

	dtos := make([]*FeedResDto, 0, len(feeds))
	for i := range feeds {
		dtos = append(dtos, NewFeedResDto(&feeds[i]))
	}
	return dtos, nil
}

func (s *Service) UpdateFeed(id uint, dto *FeedReqDto, user *models.User) (*FeedResDto, error) {
	feed, err := s.FindFeed(id)
	if err != nil {
		return nil, err
	}
	if feed.UserID != user.ID {
		return nil, utils.Forbidden("해당 작업은 작성자만 수정/삭제 할 수 있습니다!")
	}

	feed.Contents = dto.Contents
	if err := s.db.Save(feed).Error; err != nil {
		return nil, err
	}
	return NewFeedResDto(feed), nil
}

// DeleteFeed removes the feed together with its comments and every like
// row pointing at the feed or those comments, all in one transaction.
func (s *Service) DeleteFeed(id uint, user *models.User) error {
	feed, err := s.FindFeed(id)
	if err != nil {
		return err
	}
	if feed.UserID != user.ID {
		return utils.Forbidden("해당 작업은 작성자만 수정/삭제 할 수 있습니다!")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("feed_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("contents_id IN ? AND contents_type = ?", commentIDs, models.ContentsComment).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("feed_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("contents_id = ? AND contents_type = ?", id, models.ContentsFeed).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Feed{}, id).Error
	})
}

// IncreaseFeedLikes bumps the counter unconditionally. No caller check,
// no floor; the counter is not derived from like rows.
func (s *Service) IncreaseFeedLikes(id uint) error {
	if _, err := s.FindFeed(id); err != nil {
		return err
	}
	return s.db.Model(&models.Feed{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

func (s *Service) DecreaseFeedLikes(id uint) error {
	if _, err := s.FindFeed(id); err != nil {
		return err
	}
	return s.db.Model(&models.Feed{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
}

// LikeFeed records the caller's like row and bumps the counter. A user
// can hold at most one like row per feed.
func (s *Service) LikeFeed(id uint, user *models.User) error {
	if _, err := s.FindFeed(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND contents_id = ? AND contents_type = ?",
			user.ID, id, models.ContentsFeed).First(&existing).Error
		if err == nil {
			return utils.Conflict("이미 좋아요를 누르셨습니다!")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.Like{
			UserID:       user.ID,
			ContentsID:   id,
			ContentsType: models.ContentsFeed,
		}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Feed{}).Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
	})
}

func (s *Service) UnlikeFeed(id uint, user *models.User) error {
	if _, err := s.FindFeed(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND contents_id = ? AND contents_type = ?",
			user.ID, id, models.ContentsFeed).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NotFound("해당 요소가 존재하지 않습니다.")
		}
		return tx.Model(&models.Feed{}).Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
	})
}
