package main

import (
	"encoding/json"

	"github.com/thetjan888/nft-music/internal/config"
	"github.com/thetjan888/nft-music/internal/config/di"
	"github.com/thetjan888/nft-music/internal/messenger"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("queueSubscriber")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	consumer := messenger.NewConsumer(container.GetMessenger(), messenger.MarketEvents, handleMarketEvent)
	consumer.Start()
}

func handleMarketEvent(body []byte) {
	zap.L().With(zap.String("body", string(body))).Info("Market event")

	if config.Get().Webhook.Url != "" {
		container.GetWebhook().HandleEvent(json.RawMessage(body))
	}
}
