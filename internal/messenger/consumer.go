package messenger

import (
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"
)

// Consumer drains a queue and hands each message body to a handler.
// Messages are deleted once handled so a crashed handler run leaves
// them visible for redelivery.
type Consumer struct {
	messenger MessageService
	item      Item
	handler   func(body []byte)
}

func NewConsumer(messenger MessageService, item Item, handler func(body []byte)) *Consumer {
	return &Consumer{messenger: messenger, item: item, handler: handler}
}

func (c *Consumer) Start() {
	if size, err := c.messenger.GetQueueSize(c.item); err != nil {
		zap.L().With(zap.Error(err), zap.String("item", string(c.item))).Warn("Consumer: Failed to get queue size")
	} else {
		zap.L().With(zap.Int("size", *size), zap.String("item", string(c.item))).Info("Consumer: Subscribing")
	}

	messages := make(chan *sqs.Message, 10)
	go c.messenger.PollMessages(c.item, messages)

	c.consume(messages)
}

func (c *Consumer) consume(messages chan *sqs.Message) {
	for message := range messages {
		if message.Body != nil {
			c.handler([]byte(*message.Body))
		}

		if err := c.messenger.DeleteMessage(c.item, message); err != nil {
			zap.L().With(zap.Error(err), zap.String("item", string(c.item))).Error("Consumer: Failed to delete message")
		}
	}
}
