package entity

import (
	"crypto/md5"
	"fmt"
)

// MarketAction is the journal record of a single state transition,
// persisted for external indexers.
type MarketAction struct {
	TokenId uint64     `json:"tokenId"`
	Nonce   uint64     `json:"nonce"`
	Action  ActionType `json:"action"`
	From    Address    `json:"from"`
	To      Address    `json:"to"`
	Cost    string     `json:"cost"`
	Royalty string     `json:"royalty"`
}

type ActionType string

const (
	MintAction    ActionType = "mint"
	SaleAction    ActionType = "sale"
	ListingAction ActionType = "listing"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.TokenId, a.Nonce, string(a.Action))
}

func CreateMarketActionSlug(tokenId, nonce uint64, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%d-%s", tokenId, nonce, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
