package alfabank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentkit/alfabank-gateway/internal/domain"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func wellFormedStatusResponse() *orderStatusResponse {
	return &orderStatusResponse{
		Attributes:            []orderAttribute{{Name: "mdOrder", Value: "T1"}},
		Amount:                int64Ptr(1000),
		OrderNumber:           strPtr("O1"),
		Date:                  int64Ptr(1700000000000),
		ActionCode:            intPtr(0),
		ActionCodeDescription: strPtr("Approved"),
	}
}

func TestMapTransaction_RoundTrip(t *testing.T) {
	resp := wellFormedStatusResponse()
	resp.OrderDescription = strPtr("two pizzas")
	resp.IP = strPtr("192.0.2.17")

	transaction, err := mapTransaction(resp, DefaultStatusCodes())

	require.NoError(t, err)
	assert.Equal(t, "T1", transaction.TransactionID)
	assert.Equal(t, "O1", transaction.OrderNumber)
	assert.Equal(t, "two pizzas", transaction.Description)
	assert.Equal(t, int64(1000), transaction.Cost)
	assert.Equal(t, "192.0.2.17", transaction.IP)
	assert.Equal(t, time.Unix(1700000000, 0), transaction.CreatedAt)
	assert.Equal(t, GatewayName, transaction.Gateway)
	require.NotNil(t, transaction.Result)
	assert.Equal(t, domain.StatusPayed, transaction.Result.Status)
}

func TestMapTransaction_OptionalFieldsDefault(t *testing.T) {
	transaction, err := mapTransaction(wellFormedStatusResponse(), DefaultStatusCodes())

	require.NoError(t, err)
	assert.Equal(t, "", transaction.Description)
	assert.Equal(t, "", transaction.IP)
	assert.Nil(t, transaction.Card)
}

func TestMapTransaction_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*orderStatusResponse)
	}{
		{"no attributes", func(r *orderStatusResponse) { r.Attributes = nil }},
		{"empty attribute value", func(r *orderStatusResponse) { r.Attributes[0].Value = "" }},
		{"no amount", func(r *orderStatusResponse) { r.Amount = nil }},
		{"no orderNumber", func(r *orderStatusResponse) { r.OrderNumber = nil }},
		{"no date", func(r *orderStatusResponse) { r.Date = nil }},
		{"no actionCode", func(r *orderStatusResponse) { r.ActionCode = nil }},
		{"no actionCodeDescription", func(r *orderStatusResponse) { r.ActionCodeDescription = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := wellFormedStatusResponse()
			tt.mutate(resp)

			transaction, err := mapTransaction(resp, DefaultStatusCodes())

			require.Error(t, err)
			assert.Nil(t, transaction, "no partial transaction may escape")
			assert.Equal(t, domain.ErrorCodeMalformedResponse, domain.GetErrorCode(err))
		})
	}
}

func TestMapTransaction_CardMapped(t *testing.T) {
	resp := wellFormedStatusResponse()
	resp.CardAuthInfo = &cardAuthInfo{
		Pan:            strPtr("411111**1111"),
		CardholderName: strPtr("CARD HOLDER"),
		Expiration:     strPtr("202612"),
	}

	transaction, err := mapTransaction(resp, DefaultStatusCodes())

	require.NoError(t, err)
	require.NotNil(t, transaction.Card)
	assert.Equal(t, "411111**1111", transaction.Card.Number)
	assert.Equal(t, "CARD HOLDER", transaction.Card.Holder)
	assert.Equal(t, "202612", transaction.Card.Expiration)
}

func TestMapTransaction_EmptyHolderAllowed(t *testing.T) {
	resp := wellFormedStatusResponse()
	resp.CardAuthInfo = &cardAuthInfo{
		Pan:            strPtr("411111**1111"),
		CardholderName: strPtr(""),
		Expiration:     strPtr("202612"),
	}

	transaction, err := mapTransaction(resp, DefaultStatusCodes())

	require.NoError(t, err)
	require.NotNil(t, transaction.Card)
	assert.Equal(t, "", transaction.Card.Holder)
}

func TestMapTransaction_PartialCardFailsWholeMapping(t *testing.T) {
	tests := []struct {
		name string
		card *cardAuthInfo
	}{
		{"no pan", &cardAuthInfo{CardholderName: strPtr("CARD HOLDER"), Expiration: strPtr("202612")}},
		{"no holder", &cardAuthInfo{Pan: strPtr("411111**1111"), Expiration: strPtr("202612")}},
		{"no expiration", &cardAuthInfo{Pan: strPtr("411111**1111"), CardholderName: strPtr("CARD HOLDER")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := wellFormedStatusResponse()
			resp.CardAuthInfo = tt.card

			transaction, err := mapTransaction(resp, DefaultStatusCodes())

			require.Error(t, err)
			assert.Nil(t, transaction)
			assert.Equal(t, domain.ErrorCodeMalformedResponse, domain.GetErrorCode(err))
		})
	}
}
