package di

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/holiman/uint256"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"github.com/thetjan888/nft-music/internal/api"
	"github.com/thetjan888/nft-music/internal/archive"
	"github.com/thetjan888/nft-music/internal/config"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/ledger"
	"github.com/thetjan888/nft-music/internal/marketplace"
	"github.com/thetjan888/nft-music/internal/messenger"
	"github.com/thetjan888/nft-music/internal/notifier"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "ownership",
		Build: func(ctn di.Container) (interface{}, error) {
			return ledger.NewOwnership(), nil
		},
	},
	{
		Name: "funds",
		Build: func(ctn di.Container) (interface{}, error) {
			return ledger.NewFunds(), nil
		},
	},
	{
		Name: "market",
		Build: func(ctn di.Container) (interface{}, error) {
			deployment, err := deploymentFromConfig()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Invalid market configuration")
			}

			ownership := ctn.Get("ownership").(ledger.Ownership)
			funds := ctn.Get("funds").(ledger.Funds)

			// The deploying party arrives with the prepayment attached.
			funds.Credit(deployment.Operator, deployment.Payment)

			market, err := marketplace.Deploy(*deployment, ownership, funds)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to deploy market")
			}

			return market, nil
		},
	},
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := archive.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "archiver",
		Build: func(ctn di.Container) (interface{}, error) {
			return archive.NewArchiver(ctn.Get("elastic").(archive.Index)), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return archive.NewMarketActionRepository(ctn.Get("elastic").(archive.Index)), nil
		},
	},
	{
		Name: "aws.session",
		Build: func(ctn di.Container) (interface{}, error) {
			return session.NewSession(&aws.Config{
				Region: aws.String(config.Get().Aws.Region),
				Credentials: credentials.NewStaticCredentials(
					config.Get().Aws.AccessKey,
					config.Get().Aws.SecretKey,
					"",
				),
			})
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(ctn.Get("aws.session").(*session.Session)), nil
		},
	},
	{
		Name: "publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewPublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "webhook",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Webhook
			return notifier.NewWebhook(cfg.Url, cfg.Retries, cfg.Timeout), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("market").(*marketplace.Market),
				ctn.Get("cache").(*cache.Cache),
			), nil
		},
	},
}

func deploymentFromConfig() (*marketplace.Deployment, error) {
	cfg := config.Get().Market

	fee, err := uint256.FromDecimal(cfg.RoyaltyFee)
	if err != nil {
		return nil, fmt.Errorf("royalty fee: %w", err)
	}

	prices := make([]*uint256.Int, 0, len(cfg.Prices))
	for _, p := range cfg.Prices {
		price, err := uint256.FromDecimal(p)
		if err != nil {
			return nil, fmt.Errorf("price %q: %w", p, err)
		}
		prices = append(prices, price)
	}

	payment := new(uint256.Int).Mul(fee, uint256.NewInt(uint64(len(prices))))

	return &marketplace.Deployment{
		Name:       cfg.Name,
		Symbol:     cfg.Symbol,
		BaseUri:    cfg.BaseUri,
		Address:    entity.NewAddress(cfg.Address),
		Operator:   entity.NewAddress(cfg.Operator),
		Artist:     entity.NewAddress(cfg.Artist),
		RoyaltyFee: fee,
		Prices:     prices,
		Payment:    payment,
	}, nil
}
