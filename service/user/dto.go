package user

import "github.com/spartaclub/newsfeed-server/cmd/models"

type SignupReqDto struct {
	Username string `json:"username" validate:"required,alphanum,min=4,max=10"`
	Password string `json:"password" validate:"required,min=10"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	UserInfo string `json:"userInfo"`
}

// AuthReqDto carries the password re-entry required for login,
// withdrawal and similar checks against the stored hash.
type AuthReqDto struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateReqDto struct {
	Password    string `json:"password" validate:"required"`
	NewName     string `json:"newName"`
	NewUserInfo string `json:"newUserInfo"`
	NewPassword string `json:"newPassword" validate:"required,min=10"`
}

type TokenResDto struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       uint   `json:"userId"`
}

type ProfileResDto struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserInfo string `json:"userInfo"`
}

func NewProfileResDto(user *models.User) *ProfileResDto {
	return &ProfileResDto{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		UserInfo: user.UserInfo,
	}
}
