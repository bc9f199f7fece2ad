package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookswap/db"
	"bookswap/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

const tokenCacheTTL = 24 * time.Hour

// UserService - регистрация и аутентификация. Выдает непрозрачные
// токены; user_tokens в БД - источник истины, Redis - кэш поверх него.
type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// Register - создать пользователя с argon2id-хэшем пароля
func (s *UserService) Register(input RegisterInput) (int64, error) {
	if input.Username == "" || input.Password == "" {
		return 0, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	var alreadyExists int64
	err := db.GetReadOnlyDB(context.Background()).
		Model(&models.User{}).
		Where("username = ?", input.Username).
		Count(&alreadyExists).Error
	if err != nil {
		return 0, fmt.Errorf("failed to check username: %w", err)
	}
	if alreadyExists > 0 {
		return 0, fmt.Errorf("%w: username %s", ErrAlreadyExists, input.Username)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return 0, err
	}
	hash := argon2.IDKey([]byte(input.Password), salt, 1, 64*1024, 4, 32)

	user := models.User{
		Username:  input.Username,
		FullName:  input.FullName,
		AvatarURL: input.AvatarURL,
		Password:  hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash),
	}
	if err := db.GetWriteDB(context.Background()).Create(&user).Error; err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// Login - проверить пароль и выдать новый токен
func (s *UserService) Login(username, password string) (string, error) {
	var user models.User
	err := db.GetReadOnlyDB(context.Background()).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrNotAuthorized)
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	parts := strings.Split(user.Password, "$")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: invalid credentials", ErrNotAuthorized)
	}
	storedSalt, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrNotAuthorized)
	}
	hash := argon2.IDKey([]byte(password), storedSalt, 1, 64*1024, 4, 32)
	if hex.EncodeToString(hash) != parts[1] {
		return "", fmt.Errorf("%w: invalid credentials", ErrNotAuthorized)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	err = db.GetWriteDB(context.Background()).Create(&models.UserTokens{
		UserID: user.ID,
		Token:  token,
	}).Error
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	if RedisClient != nil {
		RedisClient.Set(context.Background(), tokenCacheKey(token), user.ID, tokenCacheTTL)
	}
	return token, nil
}

// Logout - отозвать токен
func (s *UserService) Logout(token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is empty", ErrValidation)
	}
	err := db.GetWriteDB(context.Background()).
		Where("token = ?", token).
		Delete(&models.UserTokens{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if RedisClient != nil {
		RedisClient.Del(context.Background(), tokenCacheKey(token))
	}
	return nil
}

// ResolveToken - найти пользователя по токену: сперва кэш, затем БД
func (s *UserService) ResolveToken(token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: token is empty", ErrNotAuthorized)
	}

	if RedisClient != nil {
		if userID, err := RedisClient.Get(context.Background(), tokenCacheKey(token)).Int64(); err == nil {
			return userID, nil
		}
	}

	var userToken models.UserTokens
	err := db.GetReadOnlyDB(context.Background()).
		Where("token = ?", token).
		First(&userToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: unknown token", ErrNotAuthorized)
		}
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	if RedisClient != nil {
		RedisClient.Set(context.Background(), tokenCacheKey(token), userToken.UserID, tokenCacheTTL)
	}
	return userToken.UserID, nil
}

// SearchUsers - поиск пользователей по нику для отправки заявок в друзья
func (s *UserService) SearchUsers(callerID int64, query string) ([]models.UserProfile, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", ErrValidation)
	}

	var users []models.User
	err := db.GetReadOnlyDB(context.Background()).
		Where("LOWER(username) LIKE ? AND id <> ?", "%"+strings.ToLower(query)+"%", callerID).
		Order("username").
		Limit(20).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, models.UserProfile{
			ID:        user.ID,
			Username:  user.Username,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
		})
	}
	return profiles, nil
}

func tokenCacheKey(token string) string {
	return "token:" + token
}
