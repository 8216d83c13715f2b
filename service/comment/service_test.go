package comment

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spartaclub/newsfeed-server/cmd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Feed{}, &models.Comment{}, &models.Like{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:      username,
		Password:      "hashed-password",
		Name:          "Sparta Club",
		Email:         username + "@email.com",
		Status:        models.StatusActivate,
		StatusModTime: time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestFeed(t *testing.T, db *gorm.DB, user *models.User) *models.Feed {
	t.Helper()
	feed := &models.Feed{Contents: "Test Feed", UserID: user.ID}
	require.NoError(t, db.Create(feed).Error)
	return feed
}

func TestFindCommentNotFound(t *testing.T) {
	service := NewService(newTestDB(t))

	_, err := service.FindComment(99)
	require.Error(t, err)
	assert.Equal(t, "해당 요소가 존재하지 않습니다.", err.Error())
}

func TestCreateCommentOnMissingFeed(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := newTestUser(t, db, "spartaclub")

	_, err := service.CreateComment(42, &CommentReqDto{Contents: "Test Contents"}, user)
	require.Error(t, err)
	assert.Equal(t, "해당 요소가 존재하지 않습니다.", err.Error())
}

func TestCreateAndGetComment(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := newTestUser(t, db, "spartaclub")
	feed := newTestFeed(t, db, user)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, user)
	require.NoError(t, err)

	got, err := service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Contents", got.Contents)
	assert.Equal(t, int64(0), got.Likes)
	assert.Equal(t, feed.ID, got.FeedID)
	assert.Equal(t, "spartaclub", got.Username)
}

func TestGetCommentWrongFeedScope(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := newTestUser(t, db, "spartaclub")
	feed := newTestFeed(t, db, user)
	otherFeed := newTestFeed(t, db, user)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, user)
	require.NoError(t, err)

	_, err = service.GetComment(otherFeed.ID, created.ID)
	require.Error(t, err)
	assert.Equal(t, "해당 요소가 존재하지 않습니다.", err.Error())
}

func TestGetAllCommentsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := newTestUser(t, db, "spartaclub")
	feed := newTestFeed(t, db, user)

	first, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "first"}, user)
	require.NoError(t, err)
	second, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "second"}, user)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	comments, err := service.GetAllComments(feed.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)
}

func TestUpdateCommentOwnership(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := newTestUser(t, db, "spartaclub")
	other := newTestUser(t, db, "intruder1")
	feed := newTestFeed(t, db, owner)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, owner)
	require.NoError(t, err)

	_, err = service.UpdateComment(feed.ID, created.ID, &CommentReqDto{Contents: "X"}, other)
	require.Error(t, err)
	assert.Equal(t, "해당 작업은 작성자만 수정/삭제 할 수 있습니다!", err.Error())

	updated, err := service.UpdateComment(feed.ID, created.ID, &CommentReqDto{Contents: "X"}, owner)
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Contents)
}

func TestDeleteCommentPurgesLikes(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := newTestUser(t, db, "spartaclub")
	liker := newTestUser(t, db, "liker12")
	feed := newTestFeed(t, db, owner)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, owner)
	require.NoError(t, err)
	require.NoError(t, service.LikeComment(feed.ID, created.ID, liker))

	err = service.DeleteComment(feed.ID, created.ID, liker)
	require.Error(t, err)
	assert.Equal(t, "해당 작업은 작성자만 수정/삭제 할 수 있습니다!", err.Error())

	require.NoError(t, service.DeleteComment(feed.ID, created.ID, owner))

	_, err = service.FindComment(created.ID)
	require.Error(t, err)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("contents_id = ? AND contents_type = ?", created.ID, models.ContentsComment).
		Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestCommentLikesCounterInversePair(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := newTestUser(t, db, "spartaclub")
	feed := newTestFeed(t, db, user)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, user)
	require.NoError(t, err)

	require.NoError(t, service.IncreaseCommentLikes(created.ID))
	got, err := service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	require.NoError(t, service.DecreaseCommentLikes(created.ID))
	got, err = service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Likes)

	require.NoError(t, service.DecreaseCommentLikes(created.ID))
	got, err = service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.Likes)
}

func TestLikeAndUnlikeComment(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := newTestUser(t, db, "spartaclub")
	liker := newTestUser(t, db, "liker12")
	feed := newTestFeed(t, db, owner)

	created, err := service.CreateComment(feed.ID, &CommentReqDto{Contents: "Test Contents"}, owner)
	require.NoError(t, err)

	require.NoError(t, service.LikeComment(feed.ID, created.ID, liker))

	err = service.LikeComment(feed.ID, created.ID, liker)
	require.Error(t, err)
	assert.Equal(t, "이미 좋아요를 누르셨습니다!", err.Error())

	got, err := service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	require.NoError(t, service.UnlikeComment(feed.ID, created.ID, liker))
	got, err = service.GetComment(feed.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Likes)

	err = service.UnlikeComment(feed.ID, created.ID, liker)
	require.Error(t, err)
	assert.Equal(t, "해당 요소가 존재하지 않습니다.", err.Error())
}
