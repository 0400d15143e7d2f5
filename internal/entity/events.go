package entity

import "github.com/nu7hatch/gouuid"

// Bought is emitted after a successful purchase. Seller is the party
// that was paid, not the new holder.
type Bought struct {
	Id      string  `json:"id"`
	TokenId uint64  `json:"tokenId"`
	Seller  Address `json:"seller"`
	Buyer   Address `json:"buyer"`
	Price   string  `json:"price"`
}

// Relisted is emitted after a token re-enters the listed state.
type Relisted struct {
	Id      string  `json:"id"`
	TokenId uint64  `json:"tokenId"`
	Seller  Address `json:"seller"`
	Price   string  `json:"price"`
}

func EventId() string {
	u, _ := uuid.NewV4()
	return u.String()
}
