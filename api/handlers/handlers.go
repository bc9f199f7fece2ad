package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookswap/services"

	"github.com/gin-gonic/gin"
)

var (
	userService    = services.NewUserService()
	libraryService = services.NewLibraryService()
	tradeService   = services.NewTradeService()
	friendService  = services.NewFriendService()
	counterService = services.NewCounterService()
)

// statusForError сопоставляет ошибку сервисного слоя с HTTP-статусом
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrSelfTrade),
		errors.Is(err, services.ErrSelfFriend):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// currentUserID достает ID пользователя, установленный auth middleware
func currentUserID(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return userID, true
}

// pathID парсит числовой параметр пути
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
