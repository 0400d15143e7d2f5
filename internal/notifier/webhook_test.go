package notifier_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thetjan888/nft-music/internal/entity"
	"github.com/thetjan888/nft-music/internal/notifier"
)

func TestWebhookDeliversEventAsJson(t *testing.T) {
	received := make(chan []byte, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := notifier.NewWebhook(server.URL, 0, 5)
	webhook.HandleEvent(entity.Bought{
		Id:      "event-1",
		TokenId: 3,
		Seller:  entity.NewAddress("0x00000000000000000000000000000000000000a1"),
		Buyer:   entity.NewAddress("0x00000000000000000000000000000000000000b1"),
		Price:   "1000000000000000000",
	})

	var bought entity.Bought
	require.NoError(t, json.Unmarshal(<-received, &bought))
	assert.Equal(t, uint64(3), bought.TokenId)
	assert.Equal(t, "1000000000000000000", bought.Price)
}

func TestWebhookRetriesFailedDelivery(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := notifier.NewWebhook(server.URL, 2, 5)
	webhook.HandleEvent(entity.Relisted{Id: "event-2", TokenId: 1, Price: "5"})

	assert.Equal(t, 2, attempts)
}
