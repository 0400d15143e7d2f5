package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/thetjan888/nft-music/internal/archive"
	"github.com/thetjan888/nft-music/internal/config"
	"github.com/thetjan888/nft-music/internal/config/di"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/ledger"
	"github.com/thetjan888/nft-music/internal/marketplace"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "inspect",
				Usage:  "Print the market items and their listing state",
				Action: inspect,
			},
			{
				Name:   "actions",
				Usage:  "Print the market action journal",
				Action: actions,
			},
			{
				Name:      "history",
				Usage:     "Print the archived history of a single token",
				ArgsUsage: "<tokenId>",
				Action:    history,
			},
			{
				Name:   "reindex",
				Usage:  "Replay the market action journal into Elasticsearch",
				Action: reindex,
			},
			{
				Name:   "scenario",
				Usage:  "Run a sample trading scenario against a fresh market",
				Action: scenario,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "tokens", Value: 8, Usage: "number of tokens to mint"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func inspect(c *cli.Context) error {
	market := container.GetMarket()

	unsold := make(map[uint64]bool)
	for _, item := range market.UnsoldTokens() {
		unsold[item.TokenId] = true
	}

	for tokenId := uint64(0); tokenId < market.TotalSupply(); tokenId++ {
		item, err := market.MarketItems(tokenId)
		if err != nil {
			return err
		}

		state := "owned"
		if unsold[item.TokenId] {
			state = "listed"
		}
		fmt.Printf("%4d  %-7s  seller=%s  price=%s\n", item.TokenId, state, item.Seller, item.Price.Dec())
	}

	return nil
}

func actions(c *cli.Context) error {
	if !config.Get().ElasticSearch.Enabled {
		for _, action := range container.GetMarket().Actions() {
			printAction(action)
		}
		return nil
	}

	repo := container.GetActionRepo()

	size := 100
	page := 1
	for {
		actions, _, err := repo.GetActions(size, page)
		if err != nil {
			return err
		}
		if len(actions) == 0 {
			break
		}
		for _, action := range actions {
			printAction(action)
		}
		page++
	}

	return nil
}

func history(c *cli.Context) error {
	if !config.Get().ElasticSearch.Enabled {
		zap.L().Error("Elasticsearch is not enabled")
		return nil
	}

	tokenId, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("token id: %w", err)
	}

	repo := container.GetActionRepo()

	actions, err := repo.GetActionsByTokenId(tokenId)
	if err != nil {
		return err
	}
	for _, action := range actions {
		printAction(action)
	}

	lastSale, err := repo.GetLastSale(tokenId)
	if err == archive.ErrMarketActionNotFound {
		fmt.Println("never sold")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("last sale: %s to %s\n", lastSale.Cost, lastSale.To)

	return nil
}

func printAction(action entity.MarketAction) {
	fmt.Printf("%4d  %-8s  token=%d  from=%s  to=%s  cost=%s  royalty=%s\n",
		action.Nonce, action.Action, action.TokenId, action.From, action.To, action.Cost, action.Royalty)
}

func reindex(c *cli.Context) error {
	if !config.Get().ElasticSearch.Enabled {
		zap.L().Error("Elasticsearch is not enabled")
		return nil
	}

	container.GetElastic().InstallMappings()
	container.GetArchiver().Reindex(container.GetMarket().Actions())

	return nil
}

func scenario(c *cli.Context) error {
	count := c.Uint64("tokens")

	operator := entity.NewAddress("0x00000000000000000000000000000000000000aa")
	artist := entity.NewAddress("0x00000000000000000000000000000000000000bb")
	buyerA := entity.NewAddress("0x00000000000000000000000000000000000000a1")
	buyerB := entity.NewAddress("0x00000000000000000000000000000000000000b1")

	ether := uint256.NewInt(1_000_000_000_000_000_000)
	fee := new(uint256.Int).Div(ether, uint256.NewInt(100))

	prices := make([]*uint256.Int, 0, count)
	for i := uint64(0); i < count; i++ {
		prices = append(prices, new(uint256.Int).Mul(uint256.NewInt(i+1), ether))
	}
	payment := new(uint256.Int).Mul(fee, uint256.NewInt(count))

	funds := ledger.NewFunds()
	funds.Credit(operator, payment)
	funds.Credit(buyerA, new(uint256.Int).Mul(uint256.NewInt(100), ether))
	funds.Credit(buyerB, new(uint256.Int).Mul(uint256.NewInt(100), ether))

	market, err := marketplace.Deploy(marketplace.Deployment{
		Name:       "DAppFi",
		Symbol:     "DAPP",
		Address:    entity.NewAddress("0x0000000000000000000000000000000000001010"),
		Operator:   operator,
		Artist:     artist,
		RoyaltyFee: fee,
		Prices:     prices,
		Payment:    payment,
	}, ledger.NewOwnership(), funds)
	if err != nil {
		return err
	}

	buy := func(buyer entity.Address, tokenId uint64) error {
		item, err := market.MarketItems(tokenId)
		if err != nil {
			return err
		}
		return market.Buy(buyer, tokenId, item.Price)
	}

	if count >= 5 {
		if err := buy(buyerA, 0); err != nil {
			return err
		}
		if err := buy(buyerA, 1); err != nil {
			return err
		}
		if err := buy(buyerB, 4); err != nil {
			return err
		}
	}

	fmt.Printf("unsold: %d\n", len(market.UnsoldTokens()))
	for party, name := range map[entity.Address]string{buyerA: "buyerA", buyerB: "buyerB"} {
		owned := market.TokensOwnedBy(party)
		ids := make([]uint64, 0, len(owned))
		for _, item := range owned {
			ids = append(ids, item.TokenId)
		}
		fmt.Printf("%s owns: %v  balance=%s\n", name, ids, funds.Balance(party).Dec())
	}
	fmt.Printf("artist balance: %s\n", funds.Balance(artist).Dec())
	fmt.Printf("royalty reserve: %s\n", market.RoyaltyReserve().Dec())

	return nil
}
