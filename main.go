package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"commerce-service/config"
	"commerce-service/consumers"
	"commerce-service/controllers"
	"commerce-service/database"
	"commerce-service/middlewares"
	"commerce-service/rabbitmq"
	"commerce-service/rediscart"
	"commerce-service/services"
)

func main() {
	// 加载配置
	cfg := config.LoadConfig()

	// 初始化数据库
	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.CloseDB()

	// 初始化Redis购物车存储
	cartStore, err := rediscart.NewStore(cfg)
	if err != nil {
		log.Fatalf("Redis initialization failed: %v", err)
	}
	defer cartStore.Close()

	// 组装 store 和 service
	productStore := database.NewProductStore(database.DB)
	orderStore := database.NewOrderStore(database.DB)
	saleStore := database.NewSaleStore(database.DB)
	userStore := database.NewUserStore(database.DB)
	messageStore := database.NewMessageStore(database.DB)

	orderSvc := services.NewOrderService(productStore, orderStore, userStore,
		cfg.OrderStatusPolicy, cfg.RestockOnCancel)
	cartSvc := services.NewCartService(cartStore, productStore)
	saleSvc := services.NewSaleService(productStore, saleStore)

	controllers.Setup(controllers.Deps{
		Orders:   orderSvc,
		Carts:    cartSvc,
		Sales:    saleSvc,
		Products: productStore,
		Users:    userStore,
		Messages: messageStore,
	})

	// 初始化RabbitMQ
	rmq, err := rabbitmq.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("RabbitMQ initialization failed: %v", err)
	}
	defer rmq.Close()

	// 设置队列和交换机
	if err := rmq.SetupQueues(); err != nil {
		log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
	}

	// 启动消息消费者
	consumers.NewOrderConsumer(orderSvc).Start(rmq.Channel, cfg)

	// 设置RabbitMQ实例到控制器
	controllers.SetRabbitMQ(rmq)

	// 创建Gin路由
	r := gin.Default()

	// 应用Prometheus中间件
	r.Use(middlewares.PrometheusMiddleware())

	// 暴露Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查端点
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 商品目录公开可读
	r.GET("/products", controllers.ListProducts)
	r.GET("/products/:id", controllers.GetProduct)

	// 需要认证的路由组
	authGroup := r.Group("/api")
	authGroup.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		authGroup.POST("/orders", controllers.CreateOrder)
		authGroup.GET("/orders", controllers.GetOrders)
		authGroup.GET("/orders/:id", controllers.GetOrderDetails)
		authGroup.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		authGroup.POST("/orders/:id/cancel", controllers.CancelOrder)
		authGroup.DELETE("/orders/:id", controllers.DeleteOrder)

		authGroup.GET("/cart", controllers.GetCart)
		authGroup.POST("/cart", controllers.AddToCart)
		authGroup.PUT("/cart", controllers.UpdateCart)
		authGroup.DELETE("/cart", controllers.RemoveFromCart)

		authGroup.GET("/sales", controllers.GetSales)

		authGroup.GET("/profile", controllers.GetProfile)
		authGroup.PUT("/profile", controllers.UpdateProfile)

		authGroup.GET("/chat/:userID", controllers.GetConversation)
		authGroup.POST("/chat/:userID", controllers.SendMessage)
	}

	// 管理端路由组
	adminGroup := authGroup.Group("")
	adminGroup.Use(middlewares.AdminOnly())
	{
		adminGroup.POST("/sales", controllers.CreateSale)
		adminGroup.POST("/products", controllers.CreateProduct)
		adminGroup.PUT("/products/:id", controllers.UpdateProduct)
		adminGroup.DELETE("/products/:id", controllers.DeleteProduct)
	}

	// 启动服务器
	port := ":8080"
	log.Printf("Commerce service starting on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
