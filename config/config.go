package config

import (
	"io/ioutil"
	"os"
	"strings"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	RabbitMQURL     string
	OrderExchange   string
	OrderQueue      string
	DeadLetterQueue string
	DelayExchange   string
	MaxPriority     int

	// 订单状态更新权限策略：owner（本人或管理员）或 any（任何已认证用户）
	OrderStatusPolicy string
	// 取消订单时是否回补库存
	RestockOnCancel bool
}

func LoadConfig() *Config {
	return &Config{
		DBUser:            getEnv("DB_USER", "root"),
		DBPassword:        getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", "xxxxx"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBName:            getEnv("DB_NAME", "ecommerce"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnvFromFile("REDIS_PASSWORD_FILE", "REDIS_PASSWORD", ""),
		JWTSecret:         getEnvFromFile("JWT_SECRET_FILE", "JWT_SECRET", "G9mCQ19ogTkuWQY9jH2wGZASuGi/JrhstQaZy4k/01o="),
		RabbitMQURL:       getEnv("RABBITMQ_URL", "amqp://admin:rabbitmq@IP:5672/"),
		OrderExchange:     getEnv("ORDER_EXCHANGE", "orders_exchange"),
		OrderQueue:        getEnv("ORDER_QUEUE", "orders_queue"),
		DeadLetterQueue:   getEnv("DEAD_LETTER_QUEUE", "dead_letter_queue"),
		DelayExchange:     getEnv("DELAY_EXCHANGE", "delay_exchange"),
		MaxPriority:       10, // 优先级队列最大优先级
		OrderStatusPolicy: getEnv("ORDER_STATUS_POLICY", "owner"),
		RestockOnCancel:   getEnv("RESTOCK_ON_CANCEL", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := ioutil.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}
