package archive

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olivere/elastic/v7"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thetjan888/nft-music/internal/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) Index {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elastic.NewSimpleClient(elastic.SetURL(server.URL))
	require.NoError(t, err)

	return index{client, cache.New(time.Minute, time.Minute), "false"}
}

func searchResponse(sources ...string) string {
	hits := ""
	for i, source := range sources {
		if i > 0 {
			hits += ","
		}
		hits += fmt.Sprintf(`{"_index":"test","_id":"%d","_source":%s}`, i, source)
	}

	return fmt.Sprintf(`{"took":1,"timed_out":false,"hits":{"total":{"value":%d,"relation":"eq"},"hits":[%s]}}`, len(sources), hits)
}

func TestGetActionsReturnsJournalPage(t *testing.T) {
	repo := NewMarketActionRepository(newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, searchResponse(
			`{"tokenId":0,"nonce":0,"action":"mint","from":"0x0000000000000000000000000000000000000000","to":"0x0000000000000000000000000000000000001010","cost":"100"}`,
			`{"tokenId":0,"nonce":1,"action":"sale","from":"0x0000000000000000000000000000000000001010","to":"0x00000000000000000000000000000000000000a1","cost":"100","royalty":"10"}`,
		))
	}))

	actions, total, err := repo.GetActions(100, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, actions, 2)
	assert.Equal(t, entity.MintAction, actions[0].Action)
	assert.Equal(t, entity.SaleAction, actions[1].Action)
	assert.Equal(t, uint64(1), actions[1].Nonce)
	assert.Equal(t, "10", actions[1].Royalty)
}

func TestGetActionsByTokenId(t *testing.T) {
	repo := NewMarketActionRepository(newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, searchResponse(
			`{"tokenId":3,"nonce":7,"action":"listing","from":"0x00000000000000000000000000000000000000a1","to":"0x0000000000000000000000000000000000001010","cost":"500","royalty":"10"}`,
		))
	}))

	actions, err := repo.GetActionsByTokenId(3)
	require.NoError(t, err)

	require.Len(t, actions, 1)
	assert.Equal(t, uint64(3), actions[0].TokenId)
	assert.Equal(t, entity.ListingAction, actions[0].Action)
}

func TestGetLastSale(t *testing.T) {
	repo := NewMarketActionRepository(newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, searchResponse(
			`{"tokenId":3,"nonce":9,"action":"sale","from":"0x00000000000000000000000000000000000000a1","to":"0x00000000000000000000000000000000000000b1","cost":"500","royalty":"10"}`,
		))
	}))

	sale, err := repo.GetLastSale(3)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleAction, sale.Action)
	assert.Equal(t, "500", sale.Cost)
}

func TestGetLastSaleWhenNeverSold(t *testing.T) {
	repo := NewMarketActionRepository(newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, searchResponse())
	}))

	_, err := repo.GetLastSale(3)
	require.ErrorIs(t, err, ErrMarketActionNotFound)
}
