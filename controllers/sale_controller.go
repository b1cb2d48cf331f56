package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commerce-service/middlewares"
	"commerce-service/models"
	"commerce-service/services"
)

type createSaleRequest struct {
	Items []services.LineRequest `json:"items" binding:"required"`
}

// CreateSale 柜台即时结账，路由上只对管理员开放
func CreateSale(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordSaleOperation("create", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := saleSvc.Create(c.Request.Context(), actor.ID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)

	if rabbitMQ != nil {
		event := models.OrderEvent{
			OrderID:  sale.ID,
			UserID:   sale.UserID,
			Type:     "sale_created",
			Total:    sale.Total,
			Occurred: time.Now(),
		}
		if err := rabbitMQ.PublishOrderEvent(event, 5); err != nil {
			log.Printf("Failed to publish sale created event: %v", err)
		}
	}
}

func GetSales(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordSaleOperation("list", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	sales, err := saleSvc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
