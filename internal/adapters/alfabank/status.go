package alfabank

import (
	"time"

	"github.com/paymentkit/alfabank-gateway/internal/domain"
)

// StatusCodes maps gateway action codes onto transaction statuses. Different
// gateway deployments use different code conventions, so the sets are
// configuration rather than constants.
type StatusCodes struct {
	// Success is the action code the gateway reports for an approved payment.
	Success int
	// Created are the action codes for a registered but not yet paid order.
	Created []int
}

// DefaultStatusCodes returns the code conventions of the stock gateway
// deployment: 0 for approved, -100 for freshly registered.
func DefaultStatusCodes() StatusCodes {
	return StatusCodes{
		Success: 0,
		Created: []int{-100},
	}
}

// resolve derives the canonical status for an action code. The success code
// wins over the created set when a deployment lists a code in both.
func (s StatusCodes) resolve(actionCode int) domain.TransactionStatus {
	if actionCode == s.Success {
		return domain.StatusPayed
	}
	for _, code := range s.Created {
		if actionCode == code {
			return domain.StatusCreated
		}
	}
	return domain.StatusError
}

// resolveResult builds the TransactionResult for a status-query response.
// The caller guarantees ActionCode and ActionCodeDescription are present;
// everything else is optional and only set when the gateway reported it.
func resolveResult(resp *orderStatusResponse, codes StatusCodes) *domain.TransactionResult {
	result := &domain.TransactionResult{
		Code:        *resp.ActionCode,
		Description: *resp.ActionCodeDescription,
		Status:      codes.resolve(*resp.ActionCode),
	}

	if resp.AuthDateTime != nil {
		payedAt := millisToTime(*resp.AuthDateTime)
		result.PayedAt = &payedAt
	}

	if resp.PaymentAmountInfo != nil && resp.PaymentAmountInfo.ApprovedAmount != nil && *resp.PaymentAmountInfo.ApprovedAmount > 0 {
		approved := *resp.PaymentAmountInfo.ApprovedAmount
		result.PayedAmount = &approved
	}

	return result
}

// millisToTime converts the gateway's epoch-millisecond timestamps.
// Sub-second precision is not needed downstream.
func millisToTime(millis int64) time.Time {
	return time.Unix(millis/1000, 0)
}
