package di

import (
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"github.com/thetjan888/nft-music/internal/api"
	"github.com/thetjan888/nft-music/internal/archive"
	"github.com/thetjan888/nft-music/internal/ledger"
	"github.com/thetjan888/nft-music/internal/marketplace"
	"github.com/thetjan888/nft-music/internal/messenger"
	"github.com/thetjan888/nft-music/internal/notifier"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetMarket() *marketplace.Market {
	return c.ctn.Get("market").(*marketplace.Market)
}

func (c *Container) GetOwnership() ledger.Ownership {
	return c.ctn.Get("ownership").(ledger.Ownership)
}

func (c *Container) GetFunds() ledger.Funds {
	return c.ctn.Get("funds").(ledger.Funds)
}

func (c *Container) GetCache() *cache.Cache {
	return c.ctn.Get("cache").(*cache.Cache)
}

func (c *Container) GetElastic() archive.Index {
	return c.ctn.Get("elastic").(archive.Index)
}

func (c *Container) GetArchiver() *archive.Archiver {
	return c.ctn.Get("archiver").(*archive.Archiver)
}

func (c *Container) GetActionRepo() archive.MarketActionRepository {
	return c.ctn.Get("action.repo").(archive.MarketActionRepository)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetPublisher() *messenger.Publisher {
	return c.ctn.Get("publisher").(*messenger.Publisher)
}

func (c *Container) GetWebhook() *notifier.Webhook {
	return c.ctn.Get("webhook").(*notifier.Webhook)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}
