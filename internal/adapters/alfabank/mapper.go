package alfabank

import (
	"github.com/paymentkit/alfabank-gateway/internal/domain"
)

// mapTransaction converts a classified status-query response into a fully
// populated Transaction. Every required field is checked before anything is
// built, so callers either get a complete Transaction or none at all.
func mapTransaction(resp *orderStatusResponse, codes StatusCodes) (*domain.Transaction, error) {
	switch {
	case len(resp.Attributes) == 0 || resp.Attributes[0].Value == "":
		return nil, domain.NewMalformedResponseError("status response is missing the order id attribute")
	case resp.Amount == nil:
		return nil, domain.NewMalformedResponseError("status response is missing amount")
	case resp.OrderNumber == nil:
		return nil, domain.NewMalformedResponseError("status response is missing orderNumber")
	case resp.Date == nil:
		return nil, domain.NewMalformedResponseError("status response is missing date")
	case resp.ActionCode == nil:
		return nil, domain.NewMalformedResponseError("status response is missing actionCode")
	case resp.ActionCodeDescription == nil:
		return nil, domain.NewMalformedResponseError("status response is missing actionCodeDescription")
	}

	var card *domain.Card
	if resp.CardAuthInfo != nil {
		mapped, err := mapCard(resp.CardAuthInfo)
		if err != nil {
			return nil, err
		}
		card = mapped
	}

	description := ""
	if resp.OrderDescription != nil {
		description = *resp.OrderDescription
	}

	ip := ""
	if resp.IP != nil {
		ip = *resp.IP
	}

	return &domain.Transaction{
		TransactionID: resp.Attributes[0].Value,
		OrderNumber:   *resp.OrderNumber,
		Description:   description,
		Cost:          *resp.Amount,
		CreatedAt:     millisToTime(*resp.Date),
		IP:            ip,
		Card:          card,
		Result:        resolveResult(resp, codes),
		Gateway:       GatewayName,
	}, nil
}

// mapCard converts the optional card block. There is no partial card: a
// block with any field missing fails the whole mapping.
func mapCard(info *cardAuthInfo) (*domain.Card, error) {
	switch {
	case info.Pan == nil:
		return nil, domain.NewMalformedResponseError("card info is missing pan")
	case info.CardholderName == nil:
		return nil, domain.NewMalformedResponseError("card info is missing cardholderName")
	case info.Expiration == nil:
		return nil, domain.NewMalformedResponseError("card info is missing expiration")
	}

	return &domain.Card{
		Number:     *info.Pan,
		Holder:     *info.CardholderName,
		Expiration: *info.Expiration,
	}, nil
}
