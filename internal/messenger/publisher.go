package messenger

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Publisher forwards market events to the queue for downstream
// consumers (indexers, notification fan-out).
type Publisher struct {
	messenger MessageService
}

func NewPublisher(messenger MessageService) *Publisher {
	return &Publisher{messenger}
}

func (p *Publisher) HandleEvent(msg interface{}) {
	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Publisher: Failed to encode event")
		return
	}

	if err := p.messenger.SendMessage(MarketEvents, body); err != nil {
		zap.L().With(zap.Error(err)).Error("Publisher: Failed to publish event")
	}
}
