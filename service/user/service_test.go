package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/spartaclub/newsfeed-server/cmd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Feed{}, &models.Comment{}, &models.Like{}))
	return db
}

func signupDto(username, email string) *SignupReqDto {
	return &SignupReqDto{
		Username: username,
		Password: "Password123!",
		Name:     "Sparta Club",
		Email:    email,
		UserInfo: "My name is Sparta Club.",
	}
}

func signupTestUser(t *testing.T, service *Service, username, email string) *models.User {
	t.Helper()
	require.NoError(t, service.Signup(signupDto(username, email)))
	user, err := service.FindByUsername(username)
	require.NoError(t, err)
	return user
}

func TestSignupHashesPassword(t *testing.T) {
	service := NewService(newTestDB(t))

	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")
	assert.Equal(t, models.StatusActivate, user.Status)
	assert.False(t, user.StatusModTime.IsZero())
	assert.NotEqual(t, "Password123!", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Password123!")))
}

func TestSignupDuplicateUsername(t *testing.T) {
	service := NewService(newTestDB(t))
	signupTestUser(t, service, "spartaclub", "sparta@email.com")

	err := service.Signup(signupDto("spartaclub", "other@email.com"))
	require.Error(t, err)
	assert.Equal(t, "중복된 사용자 이름 입니다.", err.Error())
}

func TestSignupDuplicateEmail(t *testing.T) {
	service := NewService(newTestDB(t))
	signupTestUser(t, service, "spartaclub", "sparta@email.com")

	err := service.Signup(signupDto("otherclub", "sparta@email.com"))
	require.Error(t, err)
	assert.Equal(t, "중복된 이메일 입니다.", err.Error())
}

func TestFindByUsernameNotFound(t *testing.T) {
	service := NewService(newTestDB(t))

	_, err := service.FindByUsername("nobody")
	require.Error(t, err)
	assert.Equal(t, "존재하지 않는 사용자입니다.", err.Error())
}

func TestFindByEmail(t *testing.T) {
	service := NewService(newTestDB(t))
	signupTestUser(t, service, "spartaclub", "sparta@email.com")

	user, err := service.FindByEmail("sparta@email.com")
	require.NoError(t, err)
	assert.Equal(t, "spartaclub", user.Username)

	_, err = service.FindByEmail("nobody@email.com")
	require.Error(t, err)
	assert.Equal(t, "존재하지 않는 사용자입니다.", err.Error())
}

func TestLogin(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")

	res, err := service.Login(&AuthReqDto{Username: "spartaclub", Password: "Password123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, user.ID, res.UserID)

	stored, err := service.FindByUsername("spartaclub")
	require.NoError(t, err)
	assert.Equal(t, res.RefreshToken, stored.RefreshToken)

	_, err = service.Login(&AuthReqDto{Username: "spartaclub", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, "비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())
}

func TestLoginDeactivatedUser(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")

	require.NoError(t, service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, user))

	_, err := service.Login(&AuthReqDto{Username: "spartaclub", Password: "Password123!"})
	require.Error(t, err)
	assert.Equal(t, "탈퇴한 회원입니다.", err.Error())
}

func TestRefreshRotatesToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	service := NewService(newTestDB(t))
	signupTestUser(t, service, "spartaclub", "sparta@email.com")

	login, err := service.Login(&AuthReqDto{Username: "spartaclub", Password: "Password123!"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is spent after rotation.
	_, err = service.Refresh(login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "유효하지 않은 토큰입니다.", err.Error())
}

func TestWithdraw(t *testing.T) {
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")
	other := signupTestUser(t, service, "otherclub", "other@email.com")

	err := service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, other)
	require.Error(t, err)
	assert.Equal(t, "프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())

	err = service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "wrong-password"}, user)
	require.Error(t, err)
	assert.Equal(t, "비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())

	before := user.StatusModTime
	require.NoError(t, service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, user))

	withdrawn, err := service.FindByUsername("spartaclub")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeactivate, withdrawn.Status)
	assert.True(t, withdrawn.StatusModTime.After(before) || withdrawn.StatusModTime.Equal(before))

	// Terminal state: a second withdrawal fails even for the owner.
	err = service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, withdrawn)
	require.Error(t, err)
	assert.Equal(t, "탈퇴한 회원입니다.", err.Error())
}

func TestLogout(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")
	other := signupTestUser(t, service, "otherclub", "other@email.com")

	_, err := service.Login(&AuthReqDto{Username: "spartaclub", Password: "Password123!"})
	require.NoError(t, err)

	err = service.Logout(user.ID, other)
	require.Error(t, err)
	assert.Equal(t, "프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())

	require.NoError(t, service.Logout(user.ID, user))

	stored, err := service.FindByUsername("spartaclub")
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)
}

func TestGetProfile(t *testing.T) {
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")

	profile, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "spartaclub", profile.Username)
	assert.Equal(t, "Sparta Club", profile.Name)
	assert.Equal(t, "sparta@email.com", profile.Email)
	assert.Equal(t, "My name is Sparta Club.", profile.UserInfo)

	require.NoError(t, service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, user))

	_, err = service.GetProfile(user.ID)
	require.Error(t, err)
	assert.Equal(t, "탈퇴한 회원입니다.", err.Error())
}

func TestEditProfile(t *testing.T) {
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")
	other := signupTestUser(t, service, "otherclub", "other@email.com")

	dto := &UpdateReqDto{
		Password:    "Password123!",
		NewName:     "New Name",
		NewUserInfo: "Updated info.",
		NewPassword: "NewPassword456!",
	}

	_, err := service.EditProfile(user.ID, dto, other)
	require.Error(t, err)
	assert.Equal(t, "프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())

	_, err = service.EditProfile(user.ID, &UpdateReqDto{
		Password:    "wrong-password",
		NewPassword: "NewPassword456!",
	}, user)
	require.Error(t, err)
	assert.Equal(t, "비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.", err.Error())

	_, err = service.EditProfile(user.ID, &UpdateReqDto{
		Password:    "Password123!",
		NewPassword: "Password123!",
	}, user)
	require.Error(t, err)
	assert.Equal(t, "기존 비밀번호와 일치하여 수정이 불가능합니다.", err.Error())

	profile, err := service.EditProfile(user.ID, dto, user)
	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.Name)
	assert.Equal(t, "Updated info.", profile.UserInfo)

	stored, err := service.FindByUsername("spartaclub")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("NewPassword456!")))
}

func TestEditProfileDeactivatedUser(t *testing.T) {
	service := NewService(newTestDB(t))
	user := signupTestUser(t, service, "spartaclub", "sparta@email.com")

	require.NoError(t, service.Withdraw(user.ID, &AuthReqDto{Username: "spartaclub", Password: "Password123!"}, user))

	_, err := service.EditProfile(user.ID, &UpdateReqDto{
		Password:    "Password123!",
		NewPassword: "NewPassword456!",
	}, user)
	require.Error(t, err)
	assert.Equal(t, "탈퇴한 회원입니다.", err.Error())
}
