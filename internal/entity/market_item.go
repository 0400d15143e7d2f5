package entity

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/holiman/uint256"
)

// MarketItem is the listing record for a single token. One exists per
// minted token for the lifetime of the market. The item is listed
// exactly when the token's holder is the marketplace itself; Seller is
// NoSeller between a purchase and the next relisting.
type MarketItem struct {
	TokenId uint64       `json:"tokenId"`
	Seller  Address      `json:"seller"`
	Price   *uint256.Int `json:"price"`
}

func (m MarketItem) Slug() string {
	return CreateMarketItemSlug(m.TokenId)
}

func CreateMarketItemSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("item-%d", tokenId))
}
