package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"commerce-service/database"
	"commerce-service/middlewares"
	"commerce-service/models"
	"commerce-service/rabbitmq"
	"commerce-service/services"
)

var (
	orderSvc     *services.OrderService
	cartSvc      *services.CartService
	saleSvc      *services.SaleService
	productStore *database.ProductStore
	userStore    *database.UserStore
	messageStore *database.MessageStore
	rabbitMQ     *rabbitmq.RabbitMQ
)

type Deps struct {
	Orders   *services.OrderService
	Carts    *services.CartService
	Sales    *services.SaleService
	Products *database.ProductStore
	Users    *database.UserStore
	Messages *database.MessageStore
}

func Setup(deps Deps) {
	orderSvc = deps.Orders
	cartSvc = deps.Carts
	saleSvc = deps.Sales
	productStore = deps.Products
	userStore = deps.Users
	messageStore = deps.Messages
}

func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	rabbitMQ = rmq
}

// mustActor 没有身份说明认证中间件没挂上
func mustActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Actor{}, false
	}
	return actor, true
}

// respondError 业务错误分类映射到 HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
