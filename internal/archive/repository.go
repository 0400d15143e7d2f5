package archive

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/olivere/elastic/v7"
	"github.com/thetjan888/nft-music/internal/entity"
	"go.uber.org/zap"
)

var ErrMarketActionNotFound = errors.New("market action not found")

type MarketActionRepository interface {
	GetActions(size, page int) ([]entity.MarketAction, int64, error)
	GetActionsByTokenId(tokenId uint64) ([]entity.MarketAction, error)
	GetLastSale(tokenId uint64) (*entity.MarketAction, error)
}

type marketActionRepository struct {
	elastic Index
}

func NewMarketActionRepository(elastic Index) MarketActionRepository {
	return marketActionRepository{elastic}
}

func (r marketActionRepository) GetActions(size, page int) ([]entity.MarketAction, int64, error) {
	result, err := search(r.elastic.GetClient().
		Search(MarketActionIndex.Get()).
		Sort("nonce", true).
		Size(size).
		From((page - 1) * size))

	return r.findMany(result, err)
}

func (r marketActionRepository) GetActionsByTokenId(tokenId uint64) ([]entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := search(r.elastic.GetClient().
		Search(MarketActionIndex.Get()).
		Query(query).
		Sort("nonce", true).
		Size(1000))

	actions, _, findErr := r.findMany(result, err)
	return actions, findErr
}

func (r marketActionRepository) GetLastSale(tokenId uint64) (*entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	)

	result, err := search(r.elastic.GetClient().
		Search(MarketActionIndex.Get()).
		Query(query).
		Sort("nonce", false).
		Size(1))

	return r.findOne(result, err)
}

func (r marketActionRepository) findOne(results *elastic.SearchResult, err error) (*entity.MarketAction, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrMarketActionNotFound
	}

	var action entity.MarketAction
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &action)

	return &action, err
}

func (r marketActionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, int64, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, results.TotalHits(), nil
}

func search(searchService *elastic.SearchService) (*elastic.SearchResult, error) {
	result, err := searchService.Do(context.Background())
	if err != nil && err.Error() == "elastic: Error 429 (Too Many Requests)" {
		zap.L().Warn("Elastic: 429 (Too Many Requests)")
		time.Sleep(5 * time.Second)
		return search(searchService)
	}

	return result, err
}
