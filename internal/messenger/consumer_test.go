package messenger

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/stretchr/testify/assert"
)

type stubMessageService struct {
	bodies  []string
	deleted []*sqs.Message
}

func (s *stubMessageService) SendMessage(item Item, body []byte) error {
	return nil
}

func (s *stubMessageService) PollMessages(item Item, messages chan *sqs.Message) {
	for _, body := range s.bodies {
		messages <- &sqs.Message{Body: aws.String(body)}
	}
	close(messages)
}

func (s *stubMessageService) DeleteMessage(item Item, msg *sqs.Message) error {
	s.deleted = append(s.deleted, msg)
	return nil
}

func (s *stubMessageService) GetQueueSize(item Item) (*int, error) {
	size := len(s.bodies)
	return &size, nil
}

func TestConsumerHandlesAndDeletesMessages(t *testing.T) {
	service := &stubMessageService{bodies: []string{`{"tokenId":"2"}`, `{"tokenId":"5"}`}}

	var handled []string
	consumer := NewConsumer(service, MarketEvents, func(body []byte) {
		handled = append(handled, string(body))
	})
	consumer.Start()

	assert.Equal(t, []string{`{"tokenId":"2"}`, `{"tokenId":"5"}`}, handled)
	assert.Len(t, service.deleted, 2)
}

func TestConsumerSkipsEmptyBody(t *testing.T) {
	service := &stubMessageService{}

	messages := make(chan *sqs.Message, 1)
	messages <- &sqs.Message{}
	close(messages)

	handled := 0
	consumer := NewConsumer(service, MarketEvents, func(body []byte) {
		handled++
	})
	consumer.consume(messages)

	assert.Equal(t, 0, handled)
	assert.Len(t, service.deleted, 1)
}
