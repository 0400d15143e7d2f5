package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/marketplace"
	"go.uber.org/zap"
)

// Server exposes the query layer over HTTP. It is strictly an
// observer: every route is a read.
type Server struct {
	market *marketplace.Market
	cache  *cache.Cache
}

func NewServer(market *marketplace.Market, queryCache *cache.Cache) Server {
	return Server{market, queryCache}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/market/policy", s.handleGetPolicy).Methods("GET")
	r.HandleFunc("/market/unsold", s.handleGetUnsold).Methods("GET")
	r.HandleFunc("/market/owned/{address}", s.handleGetOwned).Methods("GET")
	r.HandleFunc("/market/items/{tokenId}", s.handleGetItem).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

type itemResponse struct {
	TokenId uint64 `json:"tokenId"`
	Seller  string `json:"seller"`
	Price   string `json:"price"`
	Listed  bool   `json:"listed"`
}

type policyResponse struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	BaseUri        string `json:"baseUri"`
	Artist         string `json:"artist"`
	RoyaltyFee     string `json:"royaltyFee"`
	RoyaltyReserve string `json:"royaltyReserve"`
	TotalSupply    uint64 `json:"totalSupply"`
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJson(w, policyResponse{
		Name:           s.market.Name(),
		Symbol:         s.market.Symbol(),
		BaseUri:        s.market.BaseUri(),
		Artist:         string(s.market.Artist()),
		RoyaltyFee:     s.market.RoyaltyFee().Dec(),
		RoyaltyReserve: s.market.RoyaltyReserve().Dec(),
		TotalSupply:    s.market.TotalSupply(),
	})
}

func (s Server) handleGetUnsold(w http.ResponseWriter, r *http.Request) {
	cacheKey := fmt.Sprintf("unsold-%d", s.market.Version())
	if cached, found := s.cache.Get(cacheKey); found {
		writeJson(w, cached)
		return
	}

	items := itemResponses(s.market.UnsoldTokens(), true)
	s.cache.Set(cacheKey, items, 30*time.Second)

	writeJson(w, items)
}

func (s Server) handleGetOwned(w http.ResponseWriter, r *http.Request) {
	address := entity.NewAddress(mux.Vars(r)["address"])

	cacheKey := fmt.Sprintf("owned-%s-%d", address, s.market.Version())
	if cached, found := s.cache.Get(cacheKey); found {
		writeJson(w, cached)
		return
	}

	items := itemResponses(s.market.TokensOwnedBy(address), false)
	s.cache.Set(cacheKey, items, 30*time.Second)

	writeJson(w, items)
}

func (s Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	tokenId, err := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	item, err := s.market.MarketItems(tokenId)
	if err != nil {
		zap.L().With(zap.Uint64("tokenId", tokenId)).Warn("Market item not available")
		http.Error(w, "Market item not available", http.StatusNotFound)
		return
	}

	listed := false
	for _, unsold := range s.market.UnsoldTokens() {
		if unsold.TokenId == tokenId {
			listed = true
		}
	}

	writeJson(w, itemResponse{
		TokenId: item.TokenId,
		Seller:  string(item.Seller),
		Price:   item.Price.Dec(),
		Listed:  listed,
	})
}

func itemResponses(items []entity.MarketItem, listed bool) []itemResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemResponse{
			TokenId: item.TokenId,
			Seller:  string(item.Seller),
			Price:   item.Price.Dec(),
			Listed:  listed,
		})
	}

	return responses
}

func writeJson(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to write response")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
