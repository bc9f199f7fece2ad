package handlers

import (
	"net/http"

	"bookswap/services"

	"github.com/gin-gonic/gin"
)

// ListBooks - книги из библиотеки текущего пользователя
func ListBooks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	books, err := libraryService.ListBooks(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// SaveBook - сохранить книгу в библиотеку
func SaveBook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	book, err := libraryService.SaveBook(userID, input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// RemoveBook - удалить книгу из библиотеки
func RemoveBook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := libraryService.RemoveBook(userID, bookID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book removed"})
}

// UpdateRating - поменять оценку книги
func UpdateRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Rating *int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := libraryService.UpdateRating(userID, bookID, *req.Rating); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating updated"})
}
