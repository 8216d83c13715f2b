package utils

import (
	"errors"
	"net/http"

	"github.com/spartaclub/newsfeed-server/cmd/models"
	"gorm.io/gorm"
)

// CurrentUser loads the caller the auth middleware resolved into the
// request context. Services always receive this explicit user, never
// raw credentials.
func CurrentUser(db *gorm.DB, r *http.Request) (*models.User, error) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		return nil, Unauthorized("인증 정보가 없습니다.")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("존재하지 않는 사용자입니다.")
		}
		return nil, err
	}
	return &user, nil
}
