package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendFriendRequest - обработчик для отправки заявки в друзья
func SendFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	friendship, err := friendService.SendRequest(userID, req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "friend request sent",
		"friendship": friendship,
	})
}

// RespondToFriendRequest - обработчик для ответа на входящую заявку
func RespondToFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendshipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := friendService.RespondToRequest(userID, friendshipID, req.Decision); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friendship " + req.Decision})
}

// RemoveFriend - обработчик для удаления друга
func RemoveFriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendshipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := friendService.RemoveFriend(userID, friendshipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend removed"})
}

// GetFriends - обработчик для получения списка друзей
func GetFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	friends, err := friendService.ListFriends(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests - обработчик для получения входящих заявок в друзья
func GetPendingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := friendService.ListPendingIncoming(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
