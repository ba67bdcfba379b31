package alfabank

import (
	"encoding/json"

	"github.com/paymentkit/alfabank-gateway/internal/domain"
)

// Gateway protocol error codes. These are part of the wire protocol, unlike
// the action-code sets which vary between gateway deployments.
const (
	errCodeCreateRejected = 1 // register.do rejected the order
	errCodeBankAccess     = 5 // systemic failure: bad credentials or session
	errCodeOrderNotFound  = 6 // getOrderStatusExtended.do knows no such order
)

// errorEnvelope is the error surface shared by every gateway endpoint.
// errorCode is absent on full success.
type errorEnvelope struct {
	ErrorCode    *int   `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// hasCode reports whether the gateway returned the given error code.
func (e *errorEnvelope) hasCode(code int) bool {
	return e.ErrorCode != nil && *e.ErrorCode == code
}

// classify inspects a decoded response for gateway-level error markers before
// any field mapping occurs. A bank-access failure aborts the call regardless
// of which endpoint produced the response; endpoint-specific error codes are
// left for the operation itself to check.
func classify(raw json.RawMessage) (*errorEnvelope, error) {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, domain.NewMalformedResponseError("gateway error envelope is malformed")
	}
	if env.hasCode(errCodeBankAccess) {
		return nil, domain.NewBankAccessError(env.ErrorMessage).
			WithDetail("gateway_error_code", errCodeBankAccess)
	}
	return &env, nil
}

// registerResponse is the register.do payload. Pointer fields mark what the
// gateway may omit; the adapter treats nil required fields as malformed.
type registerResponse struct {
	ErrorCode    *int    `json:"errorCode"`
	ErrorMessage string  `json:"errorMessage"`
	OrderID      *string `json:"orderId"`
	FormURL      *string `json:"formUrl"`
}

// orderAttribute is one entry of the status-query attributes array. The first
// entry carries the gateway-assigned order identifier.
type orderAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// cardAuthInfo is the optional card block of the status-query payload.
// All three fields are required once the block is present.
type cardAuthInfo struct {
	Pan            *string `json:"pan"`
	CardholderName *string `json:"cardholderName"`
	Expiration     *string `json:"expiration"`
}

// paymentAmountInfo carries the amount the issuing bank actually authorized.
type paymentAmountInfo struct {
	ApprovedAmount *int64 `json:"approvedAmount"`
}

// orderStatusResponse is the getOrderStatusExtended.do payload.
type orderStatusResponse struct {
	ErrorCode             *int               `json:"errorCode"`
	ErrorMessage          string             `json:"errorMessage"`
	Attributes            []orderAttribute   `json:"attributes"`
	Amount                *int64             `json:"amount"`
	OrderNumber           *string            `json:"orderNumber"`
	OrderDescription      *string            `json:"orderDescription"`
	IP                    *string            `json:"ip"`
	Date                  *int64             `json:"date"` // epoch milliseconds
	ActionCode            *int               `json:"actionCode"`
	ActionCodeDescription *string            `json:"actionCodeDescription"`
	AuthDateTime          *int64             `json:"authDateTime"` // epoch milliseconds
	PaymentAmountInfo     *paymentAmountInfo `json:"paymentAmountInfo"`
	CardAuthInfo          *cardAuthInfo      `json:"cardAuthInfo"`
}
