package ledger

import (
	"errors"

	"github.com/thetjan888/nft-music/internal/entity"
)

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrNotHolder     = errors.New("from is not the current holder")
)

// Ownership is the token ownership ledger. Token identifiers are
// assigned sequentially from zero at mint time and are never reused.
type Ownership interface {
	Mint(to entity.Address) uint64
	Transfer(tokenId uint64, from, to entity.Address) error
	HolderOf(tokenId uint64) (entity.Address, error)
	BalanceOf(party entity.Address) int
	TotalSupply() uint64
}

type ownership struct {
	holders []entity.Address
}

func NewOwnership() Ownership {
	return &ownership{holders: make([]entity.Address, 0)}
}

func (o *ownership) Mint(to entity.Address) uint64 {
	o.holders = append(o.holders, to)
	return uint64(len(o.holders) - 1)
}

func (o *ownership) Transfer(tokenId uint64, from, to entity.Address) error {
	if tokenId >= uint64(len(o.holders)) {
		return ErrTokenNotFound
	}
	if o.holders[tokenId] != from {
		return ErrNotHolder
	}

	o.holders[tokenId] = to
	return nil
}

func (o *ownership) HolderOf(tokenId uint64) (entity.Address, error) {
	if tokenId >= uint64(len(o.holders)) {
		return entity.ZeroAddress, ErrTokenNotFound
	}

	return o.holders[tokenId], nil
}

func (o *ownership) BalanceOf(party entity.Address) int {
	count := 0
	for _, holder := range o.holders {
		if holder == party {
			count++
		}
	}

	return count
}

func (o *ownership) TotalSupply() uint64 {
	return uint64(len(o.holders))
}
