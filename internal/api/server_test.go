package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thetjan888/nft-music/internal/api"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/ledger"
	"github.com/thetjan888/nft-music/internal/marketplace"
)

var (
	marketAddr = entity.NewAddress("0x0000000000000000000000000000000000001010")
	operator   = entity.NewAddress("0x00000000000000000000000000000000000000aa")
	artist     = entity.NewAddress("0x00000000000000000000000000000000000000bb")
	buyer      = entity.NewAddress("0x00000000000000000000000000000000000000a1")
)

type item struct {
	TokenId uint64 `json:"tokenId"`
	Seller  string `json:"seller"`
	Price   string `json:"price"`
	Listed  bool   `json:"listed"`
}

func newServer(t *testing.T) (api.Server, *marketplace.Market) {
	t.Helper()

	funds := ledger.NewFunds()
	fee := uint256.NewInt(10)
	payment := uint256.NewInt(30)
	funds.Credit(operator, payment)
	funds.Credit(buyer, uint256.NewInt(10_000))

	market, err := marketplace.Deploy(marketplace.Deployment{
		Name:       "DAppFi",
		Symbol:     "DAPP",
		BaseUri:    "https://tracks.example/",
		Address:    marketAddr,
		Operator:   operator,
		Artist:     artist,
		RoyaltyFee: fee,
		Prices:     []*uint256.Int{uint256.NewInt(100), uint256.NewInt(200), uint256.NewInt(300)},
		Payment:    payment,
	}, ledger.NewOwnership(), funds)
	require.NoError(t, err)

	return api.NewServer(market, cache.New(time.Minute, time.Minute)), market
}

func get(t *testing.T, server api.Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	return w
}

func TestHealth(t *testing.T) {
	server, _ := newServer(t)

	w := get(t, server, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestGetPolicy(t *testing.T) {
	server, _ := newServer(t)

	w := get(t, server, "/market/policy")
	require.Equal(t, http.StatusOK, w.Code)

	var policy map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &policy))

	assert.Equal(t, "DAppFi", policy["name"])
	assert.Equal(t, "DAPP", policy["symbol"])
	assert.Equal(t, "10", policy["royaltyFee"])
	assert.Equal(t, string(artist), policy["artist"])
	assert.Equal(t, float64(3), policy["totalSupply"])
}

func TestGetUnsold(t *testing.T) {
	server, market := newServer(t)

	require.NoError(t, market.Buy(buyer, 1, uint256.NewInt(200)))

	w := get(t, server, "/market/unsold")
	require.Equal(t, http.StatusOK, w.Code)

	var items []item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, uint64(0), items[0].TokenId)
	assert.Equal(t, uint64(2), items[1].TokenId)
	assert.True(t, items[0].Listed)
}

func TestGetOwned(t *testing.T) {
	server, market := newServer(t)

	require.NoError(t, market.Buy(buyer, 0, uint256.NewInt(100)))

	w := get(t, server, "/market/owned/"+string(buyer))
	require.Equal(t, http.StatusOK, w.Code)

	var items []item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, uint64(0), items[0].TokenId)
	assert.False(t, items[0].Listed)

	w = get(t, server, "/market/owned/"+string(artist))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 0)
}

func TestGetItem(t *testing.T) {
	server, _ := newServer(t)

	w := get(t, server, "/market/items/2")
	require.Equal(t, http.StatusOK, w.Code)

	var got item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(2), got.TokenId)
	assert.Equal(t, "300", got.Price)
	assert.True(t, got.Listed)

	assert.Equal(t, http.StatusNotFound, get(t, server, "/market/items/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, server, "/market/items/abc").Code)
}

func TestUnknownRoute(t *testing.T) {
	server, _ := newServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, server, "/nope").Code)
}
