package ledger

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/thetjan888/nft-music/internal/entity"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Funds is the payment ledger capability handed to the market engine.
// Credit and Debit are the only ways value moves; a failed Debit leaves
// the ledger untouched.
type Funds interface {
	Credit(party entity.Address, amount *uint256.Int)
	Debit(party entity.Address, amount *uint256.Int) error
	Balance(party entity.Address) *uint256.Int
}

type funds struct {
	balances map[entity.Address]*uint256.Int
}

func NewFunds() Funds {
	return &funds{balances: make(map[entity.Address]*uint256.Int)}
}

func (f *funds) Credit(party entity.Address, amount *uint256.Int) {
	if amount == nil || amount.IsZero() {
		return
	}

	balance, ok := f.balances[party]
	if !ok {
		balance = uint256.NewInt(0)
		f.balances[party] = balance
	}
	balance.Add(balance, amount)
}

func (f *funds) Debit(party entity.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}

	balance, ok := f.balances[party]
	if !ok || balance.Lt(amount) {
		return ErrInsufficientFunds
	}

	balance.Sub(balance, amount)
	return nil
}

func (f *funds) Balance(party entity.Address) *uint256.Int {
	if balance, ok := f.balances[party]; ok {
		return new(uint256.Int).Set(balance)
	}

	return uint256.NewInt(0)
}
