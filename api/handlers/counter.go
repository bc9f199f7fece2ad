package handlers

import (
	"net/http"

	"bookswap/services"

	"github.com/gin-gonic/gin"
)

// GetCounters возвращает все счетчики ожидающих заявок для пользователя
func GetCounters(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counters, err := counterService.AllCounters(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"counters": counters,
	})
}

// GetCounterByType возвращает конкретный счетчик
func GetCounterByType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counterType := services.CounterType(c.Param("type"))
	if !services.ValidCounterTypes[counterType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counter type"})
		return
	}

	count, err := counterService.PendingCount(userID, counterType)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"type":    counterType,
		"count":   count,
	})
}
