package data

import (
	"fmt"
	"math/big"
)

// FeeType is the discriminant of the fee configured for a token on the contract
type FeeType uint8

const (
	// FeeUnset means no fee is configured for the token
	FeeUnset FeeType = iota
	// FeeExactValue means a fixed payment must accompany each transfer of the token
	FeeExactValue
	// FeePercentage means a part of each transfer of the token is retained as fee
	FeePercentage
)

// String returns the name of the fee type
func (ft FeeType) String() string {
	switch ft {
	case FeeUnset:
		return "Unset"
	case FeeExactValue:
		return "ExactValue"
	case FeePercentage:
		return "Percentage"
	default:
		return fmt.Sprintf("unknown fee type %d", uint8(ft))
	}
}

// FeePolicy is a fee configuration request, either exact value or percentage
type FeePolicy struct {
	Type       FeeType
	Token      string
	FeeToken   string
	FeeAmount  *big.Int
	FeePercent uint32
}

// NewExactValueFeePolicy creates an exact value fee policy: each transfer of token must be
// accompanied by a payment of feeAmount feeToken
func NewExactValueFeePolicy(feeToken string, feeAmount *big.Int, token string) FeePolicy {
	return FeePolicy{
		Type:      FeeExactValue,
		Token:     token,
		FeeToken:  feeToken,
		FeeAmount: feeAmount,
	}
}

// NewPercentageFeePolicy creates a percentage fee policy for token
func NewPercentageFeePolicy(feePercent uint32, token string) FeePolicy {
	return FeePolicy{
		Type:       FeePercentage,
		Token:      token,
		FeePercent: feePercent,
	}
}

// TokenFee is the decoded result of the getTokenFee view
type TokenFee struct {
	Type    FeeType
	Payment *EsdtPayment
	Percent uint32
}

// String returns a human-readable form of the token fee
func (tf *TokenFee) String() string {
	switch tf.Type {
	case FeeExactValue:
		if tf.Payment == nil {
			return tf.Type.String()
		}
		return fmt.Sprintf("%s(%s)", tf.Type, tf.Payment)
	case FeePercentage:
		return fmt.Sprintf("%s(%d)", tf.Type, tf.Percent)
	default:
		return tf.Type.String()
	}
}

// PaidFee is one entry of the getPaidFees view: fees collected and not yet claimed
type PaidFee struct {
	TokenIdentifier string
	Nonce           uint64
	Amount          *big.Int
}
