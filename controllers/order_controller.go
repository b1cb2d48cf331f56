package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"commerce-service/middlewares"
	"commerce-service/models"
	"commerce-service/services"
)

// 下单 15 分钟后检查支付状态
const paymentCheckDelay = 15 * time.Minute

type createOrderRequest struct {
	Items           []services.LineRequest `json:"items" binding:"required"`
	ShippingAddress *models.Address        `json:"shipping_address"`
}

func CreateOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("create", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orderSvc.Create(c.Request.Context(), actor.ID, req.Items, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)

	// 落库成功后发事件
	if rabbitMQ != nil {
		event := models.OrderEvent{
			OrderID:  order.ID,
			UserID:   order.UserID,
			Type:     "created",
			Status:   order.Status,
			Total:    order.Total,
			Occurred: time.Now(),
		}

		priority := 5           // 默认优先级
		if order.Total > 1000 { // 大额订单高优先级
			priority = 9
		}
		if err := rabbitMQ.PublishOrderEvent(event, priority); err != nil {
			log.Printf("Failed to publish order created event: %v", err)
		}

		// 设置延迟事件（15分钟后检查支付状态）
		check := event
		check.Type = "payment_check"
		if err := rabbitMQ.PublishDelayedEvent(check, paymentCheckDelay); err != nil {
			log.Printf("Failed to publish delayed payment check event: %v", err)
		}
	}
}

func GetOrders(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("list", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	orders, err := orderSvc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func GetOrderDetails(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("details", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := orderSvc.Get(c.Request.Context(), orderID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func UpdateOrderStatus(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("update_status", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orderSvc.UpdateStatus(c.Request.Context(), orderID, req.Status, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order_id": orderID, "status": order.Status})

	if rabbitMQ != nil {
		event := models.OrderEvent{
			OrderID:  order.ID,
			UserID:   order.UserID,
			Type:     "status_updated",
			Status:   order.Status,
			Total:    order.Total,
			Occurred: time.Now(),
		}

		priority := 5                               // 默认优先级
		if order.Status == models.StatusCancelled { // 取消订单高优先级
			priority = 8
		}
		if err := rabbitMQ.PublishOrderEvent(event, priority); err != nil {
			log.Printf("Failed to publish order updated event: %v", err)
		}
	}
}

func CancelOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("cancel", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := orderSvc.Cancel(c.Request.Context(), orderID, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": orderID})

	if rabbitMQ != nil {
		event := models.OrderEvent{
			OrderID:  order.ID,
			UserID:   order.UserID,
			Type:     "cancelled",
			Status:   order.Status,
			Total:    order.Total,
			Occurred: time.Now(),
		}
		if err := rabbitMQ.PublishOrderEvent(event, 8); err != nil {
			log.Printf("Failed to publish order cancelled event: %v", err)
		}
	}
}

func DeleteOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("delete", status)
	}()
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := orderSvc.Delete(c.Request.Context(), orderID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order_id": orderID})
}
