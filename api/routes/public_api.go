package routes

import (
	"bookswap/api/handlers"
	"bookswap/api/middleware"

	"github.com/gin-gonic/gin"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	publicEndpoints := router.Group("/api/v1/")
	{
		publicEndpoints.POST("auth/register", handlers.Register)
		publicEndpoints.POST("auth/login", handlers.Login)
	}

	authorized := router.Group("/api/v1/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("auth/logout", handlers.Logout)
		authorized.GET("users/search", handlers.UserSearch)

		// Библиотека
		authorized.GET("library", handlers.ListBooks)
		authorized.POST("library", handlers.SaveBook)
		authorized.DELETE("library/:id", handlers.RemoveBook)
		authorized.PUT("library/:id/rating", handlers.UpdateRating)

		// Обмены
		authorized.GET("genres", handlers.ListGenres)
		authorized.GET("trades/search", handlers.SearchOffers)
		authorized.GET("trades/offers", handlers.MyOffers)
		authorized.POST("trades/offers", handlers.CreateOffer)
		authorized.DELETE("trades/offers/:id", handlers.WithdrawOffer)
		authorized.POST("trades/offers/:id/request", handlers.RequestTrade)
		authorized.GET("trades/requests", handlers.MyRequests)
		authorized.POST("trades/requests/:id/respond", handlers.RespondToTradeRequest)

		// Друзья
		authorized.POST("friends/request", handlers.SendFriendRequest)
		authorized.POST("friends/:id/respond", handlers.RespondToFriendRequest)
		authorized.DELETE("friends/:id", handlers.RemoveFriend)
		authorized.GET("friends", handlers.GetFriends)
		authorized.GET("friends/requests", handlers.GetPendingRequests)

		// Счетчики для бейджей
		authorized.GET("counters", handlers.GetCounters)
		authorized.GET("counters/:type", handlers.GetCounterByType)
	}
	return authorized
}
