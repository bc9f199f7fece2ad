package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:60;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile - краткая информация о пользователе для выдачи в API
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

type UserTokens struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index:user_token_idx,unique" json:"user_id"`
	Token  string `gorm:"size:255;index:user_token_idx,unique" json:"token"`
}

func (UserTokens) TableName() string {
	return "user_tokens"
}
