package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"commerce-service/config"
	"commerce-service/models"
	"commerce-service/services"
)

// 队列里的 payment_check 事件由系统身份处理
var systemActor = models.Actor{ID: 0, Role: models.RoleAdmin}

type OrderConsumer struct {
	orders *services.OrderService
}

func NewOrderConsumer(orders *services.OrderService) *OrderConsumer {
	return &OrderConsumer{orders: orders}
}

func (oc *OrderConsumer) Start(ch *amqp.Channel, cfg *config.Config) {
	// 消费主订单队列
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"commerce-service", // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register consumer: %v", err)
	}

	go func() {
		for msg := range msgs {
			oc.processOrderMessage(msg)
		}
	}()

	// 消费死信队列
	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"commerce-service-dlq", // consumer tag
		false,                  // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func (oc *OrderConsumer) processOrderMessage(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in message processing: %v", r)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid message format: %s", msg.Body)
		if err := msg.Nack(false, false); err != nil {
			return
		} // 拒绝消息，不重新入队
		return
	}

	log.Printf("Processing order event: ID=%d, Type=%s", event.OrderID, event.Type)

	// 根据事件类型处理
	switch event.Type {
	case "created":
		handleOrderCreated(event)
	case "status_updated", "cancelled":
		handleStatusUpdated(event)
	case "payment_check":
		oc.handlePaymentCheck(event)
	case "sale_created":
		log.Printf("Handling sale created: %d", event.OrderID)
	default:
		log.Printf("Unknown event type: %s", event.Type)
	}

	// 处理成功后确认消息
	if err := msg.Ack(false); err != nil {
		return
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	// 实际处理：记录到数据库、通知管理员等
	if err := msg.Ack(false); err != nil {
		return
	}
}

func handleOrderCreated(event models.OrderEvent) {
	// 实际业务逻辑：通知其他服务、更新缓存等
	log.Printf("Handling order created: %d", event.OrderID)
}

func handleStatusUpdated(event models.OrderEvent) {
	switch event.Status {
	case models.StatusShipped:
		// 发送发货通知
	case models.StatusCancelled:
		// 处理取消逻辑
	}
	log.Printf("Handling status update for order %d: %s", event.OrderID, event.Status)
}

// handlePaymentCheck 下单后超时未支付的订单自动取消。
// 走状态机取消，库存回补策略与人工取消一致。
func (oc *OrderConsumer) handlePaymentCheck(event models.OrderEvent) {
	ctx := context.Background()

	order, err := oc.orders.Get(ctx, event.OrderID, systemActor)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("Failed to get order %d: %v", event.OrderID, err)
		}
		return
	}

	if order.Status != models.StatusPending {
		return
	}

	if _, err := oc.orders.Cancel(ctx, event.OrderID, systemActor); err != nil {
		log.Printf("Failed to auto-cancel order %d: %v", event.OrderID, err)
		return
	}
	log.Printf("Auto-cancelled order %d due to non-payment", event.OrderID)
}
