package archive

import (
	"fmt"

	"github.com/thetjan888/nft-music/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
)

// Get prefixes the index with the configured network and index name.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
