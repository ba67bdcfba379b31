package alfabank

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/paymentkit/alfabank-gateway/internal/adapters/ports"
	"github.com/paymentkit/alfabank-gateway/internal/domain"
	"github.com/paymentkit/alfabank-gateway/pkg/httpclient"
)

// GatewayName identifies this adapter on the transactions it produces.
const GatewayName = "alfabank"

// DefaultBaseURL is the production gateway REST endpoint.
const DefaultBaseURL = "https://engine.paymentgate.ru/payment/rest"

const (
	endpointRegister    = "register.do"
	endpointOrderStatus = "getOrderStatusExtended.do"
)

// Config holds the adapter configuration. Login and Password are required;
// everything else falls back to the stock gateway conventions.
type Config struct {
	Login     string
	Password  string
	BaseURL   string      // defaults to DefaultBaseURL
	ReturnURL string      // where the gateway redirects the payer after payment
	Codes     StatusCodes // defaults to DefaultStatusCodes()
}

// Adapter issues payment operations against the gateway and normalizes the
// responses into domain transactions. It is immutable after construction and
// safe for concurrent use; each operation is one synchronous round trip.
type Adapter struct {
	client    *gatewayClient
	codes     StatusCodes
	returnURL string
	logger    *zap.Logger
}

// New creates a gateway adapter with an injected HTTP client. Timeout and
// cancellation policy belong to that client; the adapter imposes neither.
func New(cfg Config, client ports.HTTPClient, logger *zap.Logger) (*Adapter, error) {
	if cfg.Login == "" || cfg.Password == "" {
		return nil, domain.NewInvalidConfigurationError("gateway login and password must be non-empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	codes := cfg.Codes
	if codes.Created == nil {
		codes = DefaultStatusCodes()
	}

	return &Adapter{
		client: &gatewayClient{
			baseURL:    baseURL,
			login:      cfg.Login,
			password:   cfg.Password,
			httpClient: client,
			logger:     logger,
		},
		codes:     codes,
		returnURL: cfg.ReturnURL,
		logger:    logger,
	}, nil
}

// NewWithDefaults creates an adapter backed by the tuned single-host HTTP
// client.
func NewWithDefaults(cfg Config, logger *zap.Logger) (*Adapter, error) {
	client := httpclient.New(httpclient.GatewayConfig(), 30*time.Second)
	return New(cfg, client, logger)
}

// CreateTransaction registers a new order with the gateway and returns the
// transaction carrying the payment form URL. A freshly registered order has
// no result yet: the gateway reports its status only on lookup.
func (a *Adapter) CreateTransaction(ctx context.Context, orderNumber, description string, cost int64) (*domain.Transaction, error) {
	fields := map[string]string{
		"orderNumber": orderNumber,
		"description": description,
		"amount":      strconv.FormatInt(cost, 10),
	}
	if a.returnURL != "" {
		fields["returnUrl"] = a.returnURL
	}

	raw, err := a.client.send(ctx, endpointRegister, fields)
	if err != nil {
		return nil, err
	}

	env, err := classify(raw)
	if err != nil {
		return nil, err
	}
	if env.hasCode(errCodeCreateRejected) {
		a.logger.Warn("gateway rejected order registration",
			zap.String("order_number", orderNumber),
			zap.String("gateway_message", env.ErrorMessage),
		)
		return nil, domain.NewBankRequestError(env.ErrorMessage).
			WithDetail("gateway_error_code", errCodeCreateRejected)
	}

	var resp registerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.NewMalformedResponseError("register response is malformed")
	}
	if resp.OrderID == nil || *resp.OrderID == "" {
		return nil, domain.NewMalformedResponseError("register response is missing orderId")
	}
	if resp.FormURL == nil {
		return nil, domain.NewMalformedResponseError("register response is missing formUrl")
	}

	a.logger.Info("order registered",
		zap.String("order_number", orderNumber),
		zap.String("transaction_id", *resp.OrderID),
		zap.Int64("cost", cost),
	)

	return &domain.Transaction{
		TransactionID: *resp.OrderID,
		OrderNumber:   orderNumber,
		Description:   description,
		Cost:          cost,
		CreatedAt:     time.Now(),
		URL:           *resp.FormURL,
		Gateway:       GatewayName,
	}, nil
}

// GetTransactionByID looks up the extended status of an order and returns the
// fully mapped transaction, including its result and canonical status.
func (a *Adapter) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	raw, err := a.client.send(ctx, endpointOrderStatus, map[string]string{
		"orderId": transactionID,
	})
	if err != nil {
		return nil, err
	}

	env, err := classify(raw)
	if err != nil {
		return nil, err
	}
	if env.hasCode(errCodeOrderNotFound) {
		return nil, domain.NewTransactionNotFoundError(transactionID)
	}

	var resp orderStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.NewMalformedResponseError("status response is malformed")
	}

	transaction, err := mapTransaction(&resp, a.codes)
	if err != nil {
		return nil, err
	}

	a.logger.Info("order status resolved",
		zap.String("transaction_id", transaction.TransactionID),
		zap.String("status", string(transaction.Result.Status)),
		zap.Int("action_code", transaction.Result.Code),
	)

	return transaction, nil
}

// UpdateTransaction is a capability stub for gateway deployments that push or
// pull asynchronous status updates. This gateway has no such channel.
func (a *Adapter) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	return domain.ErrUpdateNotSupported
}
