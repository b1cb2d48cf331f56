package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commerce-service/models"
)

func GetProfile(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	user, err := userStore.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if user == nil {
		// 还没有档案，返回空地址
		user = &models.User{ID: actor.ID, Role: actor.Role}
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile 保存档案收货地址（下单时的回落地址）
func UpdateProfile(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req struct {
		Address models.Address `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := userStore.SaveAddress(c.Request.Context(), actor.ID, req.Address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
