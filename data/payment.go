package data

import (
	"fmt"
	"math/big"
)

// EsdtPayment is a (token identifier, token nonce, amount) tuple attached to a transaction
type EsdtPayment struct {
	TokenIdentifier string
	Nonce           uint64
	Amount          *big.Int
}

// NewFungiblePayment creates a payment of a fungible token (nonce 0)
func NewFungiblePayment(tokenIdentifier string, amount *big.Int) EsdtPayment {
	return EsdtPayment{
		TokenIdentifier: tokenIdentifier,
		Nonce:           0,
		Amount:          amount,
	}
}

// String returns a human-readable form of the payment
func (payment EsdtPayment) String() string {
	return fmt.Sprintf("%s-%d: %s", payment.TokenIdentifier, payment.Nonce, amountString(payment.Amount))
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}

	return amount.String()
}
