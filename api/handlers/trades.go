package handlers

import (
	"net/http"
	"time"

	"bookswap/api/middleware"
	"bookswap/services"

	"github.com/gin-gonic/gin"
)

const serviceName = "bookswap"

// CreateOffer - выставить книгу на обмен
func CreateOffer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	start := time.Now()
	offer, err := tradeService.CreateOffer(userID, input)
	middleware.RecordTradeOperation("create_offer", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// SearchOffers - доступные предложения других пользователей
func SearchOffers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	offers, err := tradeService.SearchOffers(userID, c.Query("title"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

// MyOffers - предложения текущего пользователя с заявками на них
func MyOffers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	offers, err := tradeService.MyOffers(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// MyRequests - заявки текущего пользователя
func MyRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := tradeService.MyRequests(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// RequestTrade - подать заявку на предложение
func RequestTrade(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	offerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		OfferedBookID int64 `json:"offered_book_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	start := time.Now()
	request, err := tradeService.RequestTrade(userID, offerID, req.OfferedBookID)
	middleware.RecordTradeOperation("request_trade", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// RespondToTradeRequest - принять или отклонить заявку на свое предложение
func RespondToTradeRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
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

	start := time.Now()
	err := tradeService.RespondToRequest(userID, requestID, req.Decision)
	middleware.RecordTradeOperation("respond_to_request", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trade " + req.Decision})
}

// WithdrawOffer - снять свое предложение с обмена
func WithdrawOffer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	offerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	start := time.Now()
	err := tradeService.WithdrawOffer(userID, offerID)
	middleware.RecordTradeOperation("withdraw_offer", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer withdrawn"})
}

// ListGenres - справочник жанров для формы создания предложения
func ListGenres(c *gin.Context) {
	genres, err := tradeService.ListGenres()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
