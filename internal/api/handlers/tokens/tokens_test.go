package tokens_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/test"
)

const (
	testAccount = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	daiAddress  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
)

func TestAddListRemoveToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"accountAddress": testAccount,
			"chainId":        "0x1",
			"tokenAddress":   daiAddress,
			"symbol":         "DAI",
			"name":           "Dai Stablecoin",
			"decimals":       18,
		}
		res := test.PerformRequest(t, s, "POST", "/api/v1/tokens", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/api/v1/tokens?accountAddress="+testAccount+"&chainId=0x1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body struct {
			Success bool `json:"success"`
			Tokens  []struct {
				Symbol  string `json:"symbol"`
				Balance string `json:"balance"`
			} `json:"tokens"`
		}
		test.ParseResponseBody(t, res, &body)
		require.Len(t, body.Tokens, 1)
		assert.Equal(t, "DAI", body.Tokens[0].Symbol)

		res = test.PerformRequest(t, s, "POST", "/api/v1/tokens/balance", test.GenericPayload{
			"accountAddress": testAccount,
			"chainId":        "0x1",
			"tokenAddress":   daiAddress,
			"balance":        "12.5000",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/tokens?accountAddress="+testAccount+"&chainId=0x1&tokenAddress="+daiAddress, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/api/v1/tokens?accountAddress="+testAccount+"&chainId=0x1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponseBody(t, res, &body)
		assert.Empty(t, body.Tokens)
	})
}

func TestGetPopularTokens(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/tokens/popular?chainId=0x1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body struct {
			Success bool `json:"success"`
			Tokens  []struct {
				Symbol string `json:"symbol"`
			} `json:"tokens"`
		}
		test.ParseResponseBody(t, res, &body)
		assert.True(t, body.Success)

		symbols := make([]string, 0, len(body.Tokens))
		for _, tok := range body.Tokens {
			symbols = append(symbols, tok.Symbol)
		}
		assert.Contains(t, symbols, "USDT")
	})
}

func TestAddTokenMissingFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/tokens", test.GenericPayload{"chainId": "0x1"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
