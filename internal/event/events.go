package event

type Type string

const (
	TokenBoughtEvent       Type = "TokenBoughtEvent"
	TokenRelistedEvent     Type = "TokenRelistedEvent"
	MarketActionEvent      Type = "MarketActionEvent"
	RoyaltyFeeUpdatedEvent Type = "RoyaltyFeeUpdatedEvent"
)
