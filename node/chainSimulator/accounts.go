package chainSimulator

import (
	"fmt"
	"math/big"

	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

type userAccount struct {
	address      []byte
	nonce        uint64
	balance      *big.Int
	esdtBalances map[string]*big.Int
	code         []byte
	codeMetadata []byte
	ownerAddress []byte
	contract     *feeContract
}

func newUserAccount(address []byte) *userAccount {
	return &userAccount{
		address:      address,
		balance:      big.NewInt(0),
		esdtBalances: make(map[string]*big.Int),
	}
}

func esdtKey(tokenIdentifier string, nonce uint64) string {
	if nonce == 0 {
		return tokenIdentifier
	}

	return fmt.Sprintf("%s-%x", tokenIdentifier, nonce)
}

func (acc *userAccount) isContract() bool {
	return acc.contract != nil
}

func (acc *userAccount) esdtBalance(tokenIdentifier string, nonce uint64) *big.Int {
	balance, ok := acc.esdtBalances[esdtKey(tokenIdentifier, nonce)]
	if !ok {
		return big.NewInt(0)
	}

	return big.NewInt(0).Set(balance)
}

func (acc *userAccount) addESDT(tokenIdentifier string, nonce uint64, amount *big.Int) {
	key := esdtKey(tokenIdentifier, nonce)
	balance, ok := acc.esdtBalances[key]
	if !ok {
		balance = big.NewInt(0)
		acc.esdtBalances[key] = balance
	}

	balance.Add(balance, amount)
}

func (acc *userAccount) subESDT(tokenIdentifier string, nonce uint64, amount *big.Int) error {
	current := acc.esdtBalance(tokenIdentifier, nonce)
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("%w for token %s, balance %s, requested %s", ErrInsufficientFunds, tokenIdentifier, current, amount)
	}

	acc.esdtBalances[esdtKey(tokenIdentifier, nonce)] = current.Sub(current, amount)

	return nil
}

func (acc *userAccount) subBalance(value *big.Int) error {
	if acc.balance.Cmp(value) < 0 {
		return fmt.Errorf("%w, balance %s, requested %s", ErrInsufficientFunds, acc.balance, value)
	}

	acc.balance.Sub(acc.balance, value)

	return nil
}

func (acc *userAccount) clone() *userAccount {
	cloned := &userAccount{
		address:      acc.address,
		nonce:        acc.nonce,
		balance:      big.NewInt(0).Set(acc.balance),
		esdtBalances: make(map[string]*big.Int, len(acc.esdtBalances)),
		code:         acc.code,
		codeMetadata: acc.codeMetadata,
		ownerAddress: acc.ownerAddress,
	}
	for key, balance := range acc.esdtBalances {
		cloned.esdtBalances[key] = big.NewInt(0).Set(balance)
	}
	if acc.contract != nil {
		cloned.contract = acc.contract.clone()
	}

	return cloned
}

// accountsRepository is not concurrent safe, the simulator serializes the access
type accountsRepository struct {
	accounts map[string]*userAccount
}

func newAccountsRepository() *accountsRepository {
	return &accountsRepository{
		accounts: make(map[string]*userAccount),
	}
}

func (ar *accountsRepository) getAccount(address []byte) (*userAccount, bool) {
	acc, ok := ar.accounts[string(address)]
	return acc, ok
}

func (ar *accountsRepository) loadOrCreateAccount(address []byte) *userAccount {
	acc, ok := ar.accounts[string(address)]
	if !ok {
		acc = newUserAccount(address)
		ar.accounts[string(address)] = acc
	}

	return acc
}

func (ar *accountsRepository) transferValue(sender *userAccount, receiver *userAccount, value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		return nil
	}

	err := sender.subBalance(value)
	if err != nil {
		return err
	}

	receiver.balance.Add(receiver.balance, value)

	return nil
}

func (ar *accountsRepository) transferESDT(sender *userAccount, receiver *userAccount, payments []data.EsdtPayment) error {
	for _, payment := range payments {
		err := sender.subESDT(payment.TokenIdentifier, payment.Nonce, payment.Amount)
		if err != nil {
			return err
		}

		receiver.addESDT(payment.TokenIdentifier, payment.Nonce, payment.Amount)
	}

	return nil
}

// snapshot returns a deep copy of all accounts, used to revert a failed execution
func (ar *accountsRepository) snapshot() map[string]*userAccount {
	copied := make(map[string]*userAccount, len(ar.accounts))
	for key, acc := range ar.accounts {
		copied[key] = acc.clone()
	}

	return copied
}

func (ar *accountsRepository) revertToSnapshot(snapshot map[string]*userAccount) {
	ar.accounts = snapshot
}
