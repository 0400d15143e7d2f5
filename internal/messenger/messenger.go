package messenger

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/thetjan888/nft-music/internal/config"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, messages chan *sqs.Message)
	DeleteMessage(item Item, msg *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	sqs *sqs.SQS
}

type Item string

var (
	MarketEvents Item = "market.events"
)

func (i Item) queue() string {
	return fmt.Sprintf("%s-%s", config.Get().Index, string(i))
}

func NewMessenger(sess *session.Session) MessageService {
	return &Messenger{sqs: sqs.New(sess)}
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    queueUrl,
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("Messenger: Failed to send message")
	}

	return err
}

func (m Messenger) PollMessages(item Item, messages chan *sqs.Message) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("Messenger: Failed to resolve queue")
		return
	}

	for {
		output, err := m.sqs.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            queueUrl,
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(15),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("Messenger: Failed to receive messages")
			continue
		}

		for _, message := range output.Messages {
			messages <- message
		}
	}
}

func (m Messenger) DeleteMessage(item Item, msg *sqs.Message) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: msg.ReceiptHandle,
	})

	return err
}

func (m Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return nil, err
	}

	attributes, err := m.sqs.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       queueUrl,
		AttributeNames: aws.StringSlice([]string{"ApproximateNumberOfMessages"}),
	})
	if err != nil {
		return nil, err
	}

	size := 0
	if value, ok := attributes.Attributes["ApproximateNumberOfMessages"]; ok {
		_, err = fmt.Sscanf(*value, "%d", &size)
		if err != nil {
			return nil, err
		}
	}

	return &size, nil
}

func (m Messenger) queueUrl(item Item) (*string, error) {
	result, err := m.sqs.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(item.queue()),
	})
	if err != nil {
		return nil, err
	}

	return result.QueueUrl, nil
}
