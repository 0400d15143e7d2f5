package marketplace

import (
	"github.com/holiman/uint256"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/ledger"
)

// UnsoldTokens returns every item currently listed for sale, ascending
// by token id. An item is listed exactly when the marketplace itself
// holds the token.
func (m *Market) UnsoldTokens() []entity.MarketItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	unsold := make([]entity.MarketItem, 0)
	for _, item := range m.items {
		holder, err := m.ownership.HolderOf(item.TokenId)
		if err == nil && holder == m.address {
			unsold = append(unsold, copyItem(item))
		}
	}

	return unsold
}

// TokensOwnedBy returns every item whose token is currently held by
// party, ascending by token id.
func (m *Market) TokensOwnedBy(party entity.Address) []entity.MarketItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]entity.MarketItem, 0)
	for _, item := range m.items {
		holder, err := m.ownership.HolderOf(item.TokenId)
		if err == nil && holder == party {
			owned = append(owned, copyItem(item))
		}
	}

	return owned
}

// MarketItems returns the listing record for a single token.
func (m *Market) MarketItems(tokenId uint64) (entity.MarketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tokenId >= uint64(len(m.items)) {
		return entity.MarketItem{}, ledger.ErrTokenNotFound
	}

	return copyItem(m.items[tokenId]), nil
}

// Actions returns the journal of state transitions since deployment.
func (m *Market) Actions() []entity.MarketAction {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions := make([]entity.MarketAction, len(m.journal))
	copy(actions, m.journal)

	return actions
}

func (m *Market) Name() string {
	return m.name
}

func (m *Market) Symbol() string {
	return m.symbol
}

func (m *Market) BaseUri() string {
	return m.baseUri
}

func (m *Market) Address() entity.Address {
	return m.address
}

func (m *Market) Operator() entity.Address {
	return m.operator
}

func (m *Market) Artist() entity.Address {
	return m.artist
}

func (m *Market) RoyaltyFee() *uint256.Int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return new(uint256.Int).Set(m.royaltyFee)
}

// RoyaltyReserve is the marketplace-held balance still available to
// fund purchase royalties.
func (m *Market) RoyaltyReserve() *uint256.Int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.funds.Balance(m.address)
}

func (m *Market) TotalSupply() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ownership.TotalSupply()
}

// Version increments on every successful mutation; read caches key on
// it to stay coherent without invalidation hooks.
func (m *Market) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.version
}

func copyItem(item entity.MarketItem) entity.MarketItem {
	return entity.MarketItem{
		TokenId: item.TokenId,
		Seller:  item.Seller,
		Price:   new(uint256.Int).Set(item.Price),
	}
}
