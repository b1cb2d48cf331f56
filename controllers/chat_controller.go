package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commerce-service/models"
)

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage 给指定用户发一条消息
func SendMessage(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	recipientID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if recipientID == actor.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    actor.ID,
		RecipientID: recipientID,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}
	if err := messageStore.SaveMessage(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetConversation 当前用户和指定用户的往来消息
func GetConversation(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	otherID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	messages, err := messageStore.ListConversation(c.Request.Context(), actor.ID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
