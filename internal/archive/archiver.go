package archive

import (
	"github.com/thetjan888/nft-music/internal/entity"
	"go.uber.org/zap"
)

// Archiver subscribes to market actions and feeds them into the
// Elasticsearch buffer. Archiving is an observer: a persistence failure
// never feeds back into the market engine.
type Archiver struct {
	elastic Index
}

func NewArchiver(elastic Index) *Archiver {
	return &Archiver{elastic}
}

func (a *Archiver) HandleMarketAction(msg interface{}) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().Error("Archiver: Unexpected message payload")
		return
	}

	a.elastic.AddIndexRequest(MarketActionIndex.Get(), action)
	a.elastic.BatchPersist()
}

// Reindex replays a full action journal into the archive.
func (a *Archiver) Reindex(actions []entity.MarketAction) {
	for _, action := range actions {
		a.elastic.AddIndexRequest(MarketActionIndex.Get(), action)
		a.elastic.BatchPersist()
	}

	a.elastic.Persist()

	zap.L().With(zap.Int("actions", len(actions))).Info("Archiver: Reindex complete")
}
