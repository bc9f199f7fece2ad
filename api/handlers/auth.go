package handlers

import (
	"net/http"
	"strings"

	"bookswap/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register - регистрация нового пользователя
func Register(c *gin.Context) {
	var registerRequest services.RegisterInput
	if err := c.ShouldBindJSON(&registerRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	userID, err := userService.Register(registerRequest)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": userID})
}

// Login - вход, выдает токен
func Login(c *gin.Context) {
	var loginRequest LoginRequest
	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := userService.Login(loginRequest.Username, loginRequest.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// Logout - отзыв токена из Authorization заголовка
func Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := userService.Logout(token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// UserSearch - поиск пользователей по нику
func UserSearch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profiles, err := userService.SearchUsers(userID, c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}
