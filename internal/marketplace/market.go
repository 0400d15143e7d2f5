package marketplace

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/event"
	"github.com/thetjan888/nft-music/internal/ledger"
	"go.uber.org/zap"
)

// Market is the authoritative market state: one MarketItem per minted
// token plus the fee policy. Every handler runs under a single mutex so
// no two invocations ever interleave their reads and writes; outbound
// payments are the last side effect of each handler, after all state
// mutations are committed.
type Market struct {
	mu sync.Mutex

	name    string
	symbol  string
	baseUri string

	address  entity.Address
	operator entity.Address
	artist   entity.Address

	royaltyFee *uint256.Int
	items      []entity.MarketItem

	ownership ledger.Ownership
	funds     ledger.Funds

	nonce   uint64
	version uint64
	journal []entity.MarketAction
}

// Deployment carries everything the market needs at creation time.
// Payment is the attached royalty prepayment and must equal
// RoyaltyFee times len(Prices).
type Deployment struct {
	Name       string
	Symbol     string
	BaseUri    string
	Address    entity.Address
	Operator   entity.Address
	Artist     entity.Address
	RoyaltyFee *uint256.Int
	Prices     []*uint256.Int
	Payment    *uint256.Int
}

// Deploy mints one token per price, lists each at its initial price
// with the marketplace itself as seller, and moves the attached royalty
// prepayment from the operator into the marketplace-held reserve. This
// is the only point at which tokens are created.
func Deploy(d Deployment, ownership ledger.Ownership, funds ledger.Funds) (*Market, error) {
	fee := amountOrZero(d.RoyaltyFee)
	payment := amountOrZero(d.Payment)

	required, overflow := new(uint256.Int).MulOverflow(fee, uint256.NewInt(uint64(len(d.Prices))))
	if overflow || !payment.Eq(required) {
		return nil, ErrDeploymentMismatch
	}

	for _, price := range d.Prices {
		if price == nil || price.IsZero() {
			return nil, ErrInvalidPrice
		}
	}

	if err := funds.Debit(d.Operator, payment); err != nil {
		return nil, err
	}

	m := &Market{
		name:       d.Name,
		symbol:     d.Symbol,
		baseUri:    d.BaseUri,
		address:    d.Address,
		operator:   d.Operator,
		artist:     d.Artist,
		royaltyFee: fee,
		items:      make([]entity.MarketItem, 0, len(d.Prices)),
		ownership:  ownership,
		funds:      funds,
	}

	for _, price := range d.Prices {
		tokenId := ownership.Mint(m.address)
		m.items = append(m.items, entity.MarketItem{
			TokenId: tokenId,
			Seller:  m.address,
			Price:   new(uint256.Int).Set(price),
		})
		m.record(entity.MarketAction{
			TokenId: tokenId,
			Action:  entity.MintAction,
			From:    entity.ZeroAddress,
			To:      m.address,
			Cost:    price.Dec(),
		})
	}

	funds.Credit(m.address, payment)

	zap.L().With(
		zap.String("name", d.Name),
		zap.Int("tokens", len(d.Prices)),
		zap.String("royaltyFee", fee.Dec()),
	).Info("Market deployed")

	return m, nil
}

// Buy transfers a listed token to the buyer against exact payment of
// the listed price. The recorded seller is paid the full price and the
// artist receives the royalty fee out of the marketplace-held reserve;
// the buyer never pays more than the price.
func (m *Market) Buy(buyer entity.Address, tokenId uint64, payment *uint256.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.listedItem(tokenId)
	if err != nil {
		return err
	}

	if payment == nil || !payment.Eq(item.Price) {
		return ErrInvalidPayment
	}

	if m.funds.Balance(m.address).Lt(m.royaltyFee) {
		return ErrRoyaltyReserveEmpty
	}

	if err := m.funds.Debit(buyer, payment); err != nil {
		return err
	}

	// The royalty is drawn from the reserve before any state changes so
	// a shortfall still aborts the whole operation.
	royalty := new(uint256.Int).Set(m.royaltyFee)
	if err := m.funds.Debit(m.address, royalty); err != nil {
		m.funds.Credit(buyer, payment)
		return ErrRoyaltyReserveEmpty
	}

	if err := m.ownership.Transfer(tokenId, m.address, buyer); err != nil {
		// Listing was verified above; restore the debited funds.
		m.funds.Credit(m.address, royalty)
		m.funds.Credit(buyer, payment)
		return err
	}

	seller := item.Seller
	price := new(uint256.Int).Set(item.Price)
	item.Seller = entity.NoSeller
	m.version++

	m.record(entity.MarketAction{
		TokenId: tokenId,
		Action:  entity.SaleAction,
		From:    seller,
		To:      buyer,
		Cost:    price.Dec(),
		Royalty: royalty.Dec(),
	})

	// Payments are the final side effect.
	m.funds.Credit(seller, price)
	m.funds.Credit(m.artist, royalty)

	event.EmitEvent(event.TokenBoughtEvent, entity.Bought{
		Id:      entity.EventId(),
		TokenId: tokenId,
		Seller:  seller,
		Buyer:   buyer,
		Price:   price.Dec(),
	})

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("buyer", string(buyer)),
		zap.String("seller", string(seller)),
		zap.String("price", price.Dec()),
	).Info("Token bought")

	return nil
}

// Resell lists a token the caller holds back on the market at a new
// price. The caller pays the current royalty fee up front; the fee goes
// to the artist regardless of whether the token ever sells again.
func (m *Market) Resell(seller entity.Address, tokenId uint64, price, payment *uint256.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if price == nil || price.IsZero() {
		return ErrInvalidPrice
	}

	if payment == nil || !payment.Eq(m.royaltyFee) {
		return ErrRoyaltyRequired
	}

	if tokenId >= uint64(len(m.items)) {
		return ledger.ErrTokenNotFound
	}

	if err := m.funds.Debit(seller, payment); err != nil {
		return err
	}

	if err := m.ownership.Transfer(tokenId, seller, m.address); err != nil {
		m.funds.Credit(seller, payment)
		return err
	}

	item := &m.items[tokenId]
	item.Seller = seller
	item.Price = new(uint256.Int).Set(price)
	m.version++

	m.record(entity.MarketAction{
		TokenId: tokenId,
		Action:  entity.ListingAction,
		From:    seller,
		To:      m.address,
		Cost:    price.Dec(),
		Royalty: payment.Dec(),
	})

	m.funds.Credit(m.artist, payment)

	event.EmitEvent(event.TokenRelistedEvent, entity.Relisted{
		Id:      entity.EventId(),
		TokenId: tokenId,
		Seller:  seller,
		Price:   price.Dec(),
	})

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", string(seller)),
		zap.String("price", price.Dec()),
	).Info("Token relisted")

	return nil
}

// UpdateRoyaltyFee replaces the royalty fee for all subsequent resales
// and reserve draws. Operator only.
func (m *Market) UpdateRoyaltyFee(caller entity.Address, fee *uint256.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.operator {
		return ErrUnauthorized
	}

	m.royaltyFee = amountOrZero(fee)
	m.version++

	event.EmitEvent(event.RoyaltyFeeUpdatedEvent, m.royaltyFee.Dec())

	zap.L().With(zap.String("royaltyFee", m.royaltyFee.Dec())).Info("Royalty fee updated")

	return nil
}

func (m *Market) listedItem(tokenId uint64) (*entity.MarketItem, error) {
	if tokenId >= uint64(len(m.items)) {
		return nil, ErrNotListed
	}

	holder, err := m.ownership.HolderOf(tokenId)
	if err != nil || holder != m.address {
		return nil, ErrNotListed
	}

	return &m.items[tokenId], nil
}

func (m *Market) record(action entity.MarketAction) {
	action.Nonce = m.nonce
	m.nonce++
	m.journal = append(m.journal, action)

	event.EmitEvent(event.MarketActionEvent, action)
}

func amountOrZero(amount *uint256.Int) *uint256.Int {
	if amount == nil {
		return uint256.NewInt(0)
	}

	return new(uint256.Int).Set(amount)
}
