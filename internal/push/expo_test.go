package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expoToken(i int) string {
	return fmt.Sprintf("ExponentPushToken[device-%03d]", i)
}

func TestValidToken(t *testing.T) {
	assert.True(t, ValidToken("ExponentPushToken[abc123]"))
	assert.False(t, ValidToken("abc123"))
	assert.False(t, ValidToken("ExponentPushToken[abc123"))
	assert.False(t, ValidToken(""))
}

func TestSendFiltersInvalidTokens(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		tickets := make([]ticket, len(got.To))
		for i := range tickets {
			tickets[i] = ticket{Status: "ok"}
		}
		json.NewEncoder(w).Encode(sendResponse{Data: tickets})
	}))
	defer srv.Close()

	client := NewExpoClientWithEndpoint(srv.URL)
	accepted, err := client.Send(context.Background(), []string{
		expoToken(1), "not-a-token", expoToken(2),
	}, "Title", "Body", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, accepted)
	assert.Equal(t, []string{expoToken(1), expoToken(2)}, got.To)
	assert.Equal(t, "default", got.Sound)
}

func TestSendChunksAtOneHundred(t *testing.T) {
	var chunks [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		chunks = append(chunks, msg.To)
		tickets := make([]ticket, len(msg.To))
		for i := range tickets {
			tickets[i] = ticket{Status: "ok"}
		}
		json.NewEncoder(w).Encode(sendResponse{Data: tickets})
	}))
	defer srv.Close()

	tokens := make([]string, 230)
	for i := range tokens {
		tokens[i] = expoToken(i)
	}

	client := NewExpoClientWithEndpoint(srv.URL)
	accepted, err := client.Send(context.Background(), tokens, "T", "B", nil)
	require.NoError(t, err)

	assert.Equal(t, 230, accepted)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 30)
}

func TestSendCountsRejectedTickets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendResponse{Data: []ticket{
			{Status: "ok"},
			{Status: "error", Message: "DeviceNotRegistered"},
		}})
	}))
	defer srv.Close()

	client := NewExpoClientWithEndpoint(srv.URL)
	accepted, err := client.Send(context.Background(), []string{expoToken(1), expoToken(2)}, "T", "B", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
}

func TestSendGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewExpoClientWithEndpoint(srv.URL)
	_, err := client.Send(context.Background(), []string{expoToken(1)}, "T", "B", nil)
	assert.Error(t, err)
}

func TestSendNoValidTokensSkipsNetwork(t *testing.T) {
	client := NewExpoClientWithEndpoint("http://127.0.0.1:0")
	accepted, err := client.Send(context.Background(), []string{"junk"}, "T", "B", nil)
	require.NoError(t, err)
	assert.Zero(t, accepted)
}
