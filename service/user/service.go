package user

import (
	"errors"
	"time"

	"github.com/spartaclub/newsfeed-server/cmd/models"
	"github.com/spartaclub/newsfeed-server/cmd/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("존재하지 않는 사용자입니다.")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("존재하지 않는 사용자입니다.")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) findByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("존재하지 않는 사용자입니다.")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) Signup(dto *SignupReqDto) error {
	var existing models.User
	if err := s.db.Where("username = ?", dto.Username).First(&existing).Error; err == nil {
		return utils.Conflict("중복된 사용자 이름 입니다.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.db.Where("email = ?", dto.Email).First(&existing).Error; err == nil {
		return utils.Conflict("중복된 이메일 입니다.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:      dto.Username,
		Password:      string(hash),
		Name:          dto.Name,
		Email:         dto.Email,
		UserInfo:      dto.UserInfo,
		Status:        models.StatusActivate,
		StatusModTime: time.Now(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}

	go sendWelcomeEmail(user.Email, user.Name)
	return nil
}

func (s *Service) Login(dto *AuthReqDto) (*TokenResDto, error) {
	user, err := s.FindByUsername(dto.Username)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusDeactivate {
		return nil, utils.Forbidden("탈퇴한 회원입니다.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, utils.Forbidden("비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.")
	}

	accessToken, err := generateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken := generateRefreshToken()

	if err := s.db.Model(user).Update("refresh_token", refreshToken).Error; err != nil {
		return nil, err
	}

	return &TokenResDto{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
	}, nil
}

// Refresh rotates the token pair for whichever user currently holds the
// presented refresh token.
func (s *Service) Refresh(refreshToken string) (*TokenResDto, error) {
	if refreshToken == "" {
		return nil, utils.Unauthorized("유효하지 않은 토큰입니다.")
	}

	var user models.User
	if err := s.db.Where("refresh_token = ?", refreshToken).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("유효하지 않은 토큰입니다.")
		}
		return nil, err
	}

	accessToken, err := generateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	newRefreshToken := generateRefreshToken()

	if err := s.db.Model(&user).Update("refresh_token", newRefreshToken).Error; err != nil {
		return nil, err
	}

	return &TokenResDto{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		UserID:       user.ID,
	}, nil
}

// Withdraw soft-deletes the account: the row stays, status flips to
// DEACTIVATE. There is no reactivation path.
func (s *Service) Withdraw(userID uint, dto *AuthReqDto, caller *models.User) error {
	user, err := s.findByID(userID)
	if err != nil {
		return err
	}
	if caller.Username != user.Username {
		return utils.Forbidden("프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return utils.Forbidden("비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.")
	}
	if user.Status == models.StatusDeactivate {
		return utils.Forbidden("탈퇴한 회원입니다.")
	}

	user.Status = models.StatusDeactivate
	user.StatusModTime = time.Now()
	return s.db.Save(user).Error
}

func (s *Service) Logout(userID uint, caller *models.User) error {
	if caller.ID != userID {
		return utils.Forbidden("프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.")
	}

	user, err := s.findByID(userID)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("refresh_token", "").Error
}

func (s *Service) GetProfile(userID uint) (*ProfileResDto, error) {
	user, err := s.findByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusDeactivate {
		return nil, utils.Forbidden("탈퇴한 회원입니다.")
	}
	return NewProfileResDto(user), nil
}

func (s *Service) EditProfile(userID uint, dto *UpdateReqDto, caller *models.User) (*ProfileResDto, error) {
	user, err := s.findByID(userID)
	if err != nil {
		return nil, err
	}
	if caller.Username != user.Username {
		return nil, utils.Forbidden("프로필 사용자와 일치하지 않아 요청을 처리할 수 없습니다.")
	}
	if user.Status == models.StatusDeactivate {
		return nil, utils.Forbidden("탈퇴한 회원입니다.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, utils.Forbidden("비밀번호가 일치하지 않아 요청을 처리할 수 없습니다.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.NewPassword)) == nil {
		return nil, utils.Conflict("기존 비밀번호와 일치하여 수정이 불가능합니다.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if dto.NewName != "" {
		user.Name = dto.NewName
	}
	if dto.NewUserInfo != "" {
		user.UserInfo = dto.NewUserInfo
	}
	user.Password = string(hash)

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return NewProfileResDto(user), nil
}
