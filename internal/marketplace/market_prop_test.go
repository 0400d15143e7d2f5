package marketplace_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/ledger"
	"github.com/thetjan888/nft-music/internal/marketplace"
	"pgregory.net/rapid"
)

// Any sequence of well-formed buys and resells keeps the registry and
// the ownership ledger consistent: a token is in UnsoldTokens exactly
// when the marketplace holds it, listed prices stay positive, and no
// value is created or destroyed.
func TestMarketStateStaysConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tokens := rapid.Uint64Range(1, 6).Draw(t, "tokens")

		prices := make([]*uint256.Int, 0, tokens)
		for i := uint64(0); i < tokens; i++ {
			prices = append(prices, ether(rapid.Uint64Range(1, 9).Draw(t, "price")))
		}

		fee := centi(rapid.Uint64Range(0, 5).Draw(t, "fee"))
		payment := new(uint256.Int).Mul(fee, uint256.NewInt(tokens))

		ownership := ledger.NewOwnership()
		funds := ledger.NewFunds()
		funds.Credit(operator, payment)
		funds.Credit(buyerA, ether(1000))
		funds.Credit(buyerB, ether(1000))

		total := new(uint256.Int).Add(payment, ether(2000))

		market, err := marketplace.Deploy(marketplace.Deployment{
			Name:       "DAppFi",
			Symbol:     "DAPP",
			Address:    marketAddr,
			Operator:   operator,
			Artist:     artist,
			RoyaltyFee: fee,
			Prices:     prices,
			Payment:    payment,
		}, ownership, funds)
		require.NoError(t, err)

		actors := []entity.Address{buyerA, buyerB}
		steps := rapid.IntRange(0, 40).Draw(t, "steps")

		for step := 0; step < steps; step++ {
			actor := actors[rapid.IntRange(0, 1).Draw(t, "actor")]
			tokenId := rapid.Uint64Range(0, tokens-1).Draw(t, "tokenId")

			holder, err := ownership.HolderOf(tokenId)
			require.NoError(t, err)

			if holder == marketAddr {
				item, err := market.MarketItems(tokenId)
				require.NoError(t, err)
				err = market.Buy(actor, tokenId, item.Price)
				if err != nil {
					require.ErrorIs(t, err, marketplace.ErrRoyaltyReserveEmpty)
				}
			} else {
				newPrice := ether(rapid.Uint64Range(1, 9).Draw(t, "newPrice"))
				err = market.Resell(holder, tokenId, newPrice, market.RoyaltyFee())
				require.NoError(t, err)
			}

			checkConsistency(t, market, ownership, tokens)

			balances := new(uint256.Int)
			for _, party := range []entity.Address{operator, artist, buyerA, buyerB, marketAddr} {
				balances.Add(balances, funds.Balance(party))
			}
			require.True(t, balances.Eq(total), "value must be conserved")
		}
	})
}

func checkConsistency(t *rapid.T, market *marketplace.Market, ownership ledger.Ownership, tokens uint64) {
	listed := make(map[uint64]bool)
	for _, item := range market.UnsoldTokens() {
		listed[item.TokenId] = true
	}

	for tokenId := uint64(0); tokenId < tokens; tokenId++ {
		holder, err := ownership.HolderOf(tokenId)
		require.NoError(t, err)

		item, err := market.MarketItems(tokenId)
		require.NoError(t, err)

		if holder == marketAddr {
			require.True(t, listed[tokenId], "marketplace-held token must be listed")
			require.False(t, item.Seller.IsZero(), "listed item must have a seller")
		} else {
			require.False(t, listed[tokenId], "privately held token must not be listed")

			owned := market.TokensOwnedBy(holder)
			found := false
			for _, o := range owned {
				if o.TokenId == tokenId {
					found = true
				}
			}
			require.True(t, found, "holder query must include the token")
		}

		require.False(t, item.Price.IsZero(), "price must stay positive")
	}
}
