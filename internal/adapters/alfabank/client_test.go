package alfabank

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paymentkit/alfabank-gateway/internal/domain"
	"github.com/paymentkit/alfabank-gateway/test/mocks"
)

func newTestClient(httpClient *mocks.MockHTTPClient) *gatewayClient {
	return &gatewayClient{
		baseURL:    "https://gateway.test/payment/rest",
		login:      "merchant-api",
		password:   "secret",
		httpClient: httpClient,
		logger:     zap.NewNop(),
	}
}

func TestGatewayClient_Send_MergesCredentials(t *testing.T) {
	mock := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)

		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "O1", form.Get("orderNumber"))
		assert.Equal(t, "merchant-api", form.Get("userName"))
		assert.Equal(t, "secret", form.Get("password"))

		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(bytes.NewBufferString(`{"orderId":"T1"}`)),
			Header:     make(http.Header),
		}, nil
	})

	client := newTestClient(mock)

	raw, err := client.send(context.Background(), "register.do", map[string]string{"orderNumber": "O1"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"T1"}`, string(raw))

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://gateway.test/payment/rest/register.do", req.URL.String())
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	// Credentials never leak into the URL
	assert.Empty(t, req.URL.RawQuery)
}

func TestGatewayClient_Send_TransportError(t *testing.T) {
	mock := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	client := newTestClient(mock)

	raw, err := client.send(context.Background(), "register.do", nil)

	require.Error(t, err)
	assert.Nil(t, raw)
	assert.True(t, domain.IsTransportError(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGatewayClient_Send_EmptyObjectIsMalformed(t *testing.T) {
	mock := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
			Header:     make(http.Header),
		}, nil
	})

	client := newTestClient(mock)

	raw, err := client.send(context.Background(), "register.do", nil)

	require.Error(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, domain.ErrorCodeMalformedResponse, domain.GetErrorCode(err))
}
