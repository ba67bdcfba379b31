package alfabank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paymentkit/alfabank-gateway/internal/adapters/ports"
	"github.com/paymentkit/alfabank-gateway/internal/domain"
	"github.com/paymentkit/alfabank-gateway/pkg/observability"
)

// gatewayClient sends form-encoded POST requests to gateway REST endpoints
// and returns the raw JSON body once it is known to decode to a non-empty
// object. No retries, no caching: one outbound request per call.
type gatewayClient struct {
	baseURL    string
	login      string
	password   string
	httpClient ports.HTTPClient
	logger     *zap.Logger
}

// send merges the operation fields with the stored credentials and performs
// the round trip. Credentials travel only in the form body and never reach
// the logs.
func (c *gatewayClient) send(ctx context.Context, endpointMethod string, fields map[string]string) (json.RawMessage, error) {
	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}
	form.Set("userName", c.login)
	form.Set("password", c.password)

	endpoint := strings.TrimRight(c.baseURL, "/") + "/" + endpointMethod
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("sending gateway request",
		zap.String("endpoint", endpointMethod),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordGatewayRequest(endpointMethod, observability.OutcomeTransportError, time.Since(start))
		c.logger.Error("gateway request failed",
			zap.String("endpoint", endpointMethod),
			zap.Error(err),
		)
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordGatewayRequest(endpointMethod, observability.OutcomeTransportError, time.Since(start))
		c.logger.Error("failed to read gateway response",
			zap.String("endpoint", endpointMethod),
			zap.Error(err),
		)
		return nil, domain.NewTransportError(err)
	}

	c.logger.Info("received gateway response",
		zap.String("endpoint", endpointMethod),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("body_length", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusInternalServerError {
		observability.RecordGatewayRequest(endpointMethod, observability.OutcomeTransportError, time.Since(start))
		return nil, domain.NewTransportError(fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		observability.RecordGatewayRequest(endpointMethod, observability.OutcomeMalformed, time.Since(start))
		return nil, domain.NewMalformedResponseError("gateway response is not a JSON object")
	}
	if len(decoded) == 0 {
		observability.RecordGatewayRequest(endpointMethod, observability.OutcomeMalformed, time.Since(start))
		return nil, domain.NewMalformedResponseError("gateway response is empty")
	}

	observability.RecordGatewayRequest(endpointMethod, observability.OutcomeOK, time.Since(start))
	return json.RawMessage(body), nil
}
