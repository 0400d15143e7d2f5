package main

import (
	"net/http"

	"github.com/thetjan888/nft-music/internal/config"
	"github.com/thetjan888/nft-music/internal/config/di"
	"github.com/thetjan888/nft-music/internal/event"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	market := container.GetMarket()

	if config.Get().ElasticSearch.Enabled {
		container.GetElastic().InstallMappings()
		event.AddEventListener(event.MarketActionEvent, container.GetArchiver().HandleMarketAction)
	}

	if config.Get().Webhook.Url != "" {
		webhook := container.GetWebhook()
		event.AddEventListener(event.TokenBoughtEvent, webhook.HandleEvent)
		event.AddEventListener(event.TokenRelistedEvent, webhook.HandleEvent)
	}

	if config.Get().Aws.Queue {
		publisher := container.GetPublisher()
		event.AddEventListener(event.TokenBoughtEvent, publisher.HandleEvent)
		event.AddEventListener(event.TokenRelistedEvent, publisher.HandleEvent)
	}

	zap.L().With(
		zap.String("name", market.Name()),
		zap.Uint64("tokens", market.TotalSupply()),
		zap.String("port", config.Get().ApiPort),
	).Info("Market started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApi().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start market API")
	}
}
